package nation

import "strings"

// Neutral is returned whenever a code cannot be resolved to a flag.
const Neutral = "🎾"

const regionalIndicatorA = 0x1F1E6

// iocToISO2 maps IOC/NOC federation codes, as used by tennis feeds, to ISO-3166 alpha-2.
var iocToISO2 = map[string]string{
	// Americas
	"USA": "US", "CAN": "CA", "MEX": "MX",
	"ARG": "AR", "BRA": "BR", "CHI": "CL", "COL": "CO", "PER": "PE",
	"URU": "UY", "PAR": "PY", "BOL": "BO", "ECU": "EC", "VEN": "VE",
	"CRC": "CR", "PAN": "PA", "GUA": "GT", "HON": "HN", "ESA": "SV", "NCA": "NI", "BIZ": "BZ",
	"CUB": "CU", "DOM": "DO", "HAI": "HT", "JAM": "JM", "TTO": "TT",
	"BAH": "BS", "BAR": "BB", "BER": "BM", "GUY": "GY", "SUR": "SR",
	"PUR": "PR", "ANT": "AG", "DMA": "DM", "GRN": "GD", "LCA": "LC", "VIN": "VC", "SKN": "KN",
	"ARU": "AW", "IVB": "VG", "ISV": "VI", "CAY": "KY",

	// Europe
	"ESP": "ES", "FRA": "FR", "GBR": "GB", "GER": "DE", "ITA": "IT", "NED": "NL",
	"SUI": "CH", "SWE": "SE", "NOR": "NO", "DEN": "DK", "BEL": "BE", "AUT": "AT",
	"POR": "PT", "POL": "PL", "CZE": "CZ", "SVK": "SK", "SLO": "SI", "CRO": "HR", "SRB": "RS",
	"UKR": "UA", "ROU": "RO", "GRE": "GR", "GRC": "GR",
	"HUN": "HU", "IRL": "IE", "ISL": "IS", "FIN": "FI", "LUX": "LU", "MLT": "MT", "CYP": "CY",
	"ALB": "AL", "ARM": "AM", "AZE": "AZ", "BLR": "BY", "BUL": "BG",
	"EST": "EE", "LAT": "LV", "LTU": "LT", "MDA": "MD", "GEO": "GE",
	"MON": "MC", "LIE": "LI", "AND": "AD", "SMR": "SM",
	"MKD": "MK", "MNE": "ME", "BIH": "BA", "KOS": "XK", "RUS": "RU",

	// Asia / Middle East
	"CHN": "CN", "JPN": "JP", "KOR": "KR", "PRK": "KP",
	"IND": "IN", "PAK": "PK", "BAN": "BD", "NEP": "NP", "BHU": "BT", "MDV": "MV", "SRI": "LK",
	"AFG": "AF", "KAZ": "KZ", "KGZ": "KG", "TJK": "TJ", "UZB": "UZ", "TKM": "TM", "MGL": "MN",
	"IRI": "IR", "IRQ": "IQ", "QAT": "QA", "UAE": "AE", "BRN": "BH", "OMA": "OM",
	"KSA": "SA", "YEM": "YE", "JOR": "JO", "LIB": "LB", "ISR": "IL", "PLE": "PS",
	"TUR": "TR", "KUW": "KW", "SYR": "SY",
	"HKG": "HK", "TPE": "TW",

	// Southeast Asia
	"THA": "TH", "VIE": "VN", "PHI": "PH", "MAS": "MY", "INA": "ID", "SGP": "SG",
	"CAM": "KH", "LAO": "LA", "MYA": "MM", "BRU": "BN", "TLS": "TL",

	// Oceania
	"AUS": "AU", "NZL": "NZ",
	"FIJ": "FJ", "PNG": "PG", "SAM": "WS", "ASA": "AS", "TGA": "TO",
	"SOL": "SB", "VAN": "VU", "NRU": "NR", "KIR": "KI", "TUV": "TV",
	"COK": "CK", "PLW": "PW", "FSM": "FM", "MHL": "MH", "GUM": "GU",

	// Africa
	"EGY": "EG", "MAR": "MA", "TUN": "TN", "ALG": "DZ", "RSA": "ZA",
	"NGR": "NG", "NIG": "NE", "GUI": "GN", "GBS": "GW", "CPV": "CV",
	"SEN": "SN", "GAM": "GM", "GHA": "GH", "CIV": "CI", "BUR": "BF", "SLE": "SL", "LBR": "LR",
	"MLI": "ML", "MTN": "MR", "BEN": "BJ", "TOG": "TG",
	"CMR": "CM", "GAB": "GA", "GEQ": "GQ", "CAF": "CF", "CHA": "TD",
	"CGO": "CG", "COD": "CD",
	"UGA": "UG", "KEN": "KE", "TAN": "TZ", "RWA": "RW", "BDI": "BI", "ETH": "ET",
	"DJI": "DJ", "ERI": "ER", "SOM": "SO", "SUD": "SD", "SSD": "SS",
	"BOT": "BW", "NAM": "NA", "ZAM": "ZM", "ZIM": "ZW",
	"LES": "LS", "SWZ": "SZ", "MAD": "MG", "MAW": "MW", "MOZ": "MZ", "ANG": "AO",
	"STP": "ST", "SEY": "SC", "MRI": "MU", "COM": "KM",
}

// ISO2 returns the alpha-2 region code for a federation code.
func ISO2(code string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(code))
	if key == "" {
		return "", false
	}
	iso, ok := iocToISO2[key]
	return iso, ok
}

// Flag converts an alpha-2 region code into a regional-indicator pair.
func Flag(iso2 string) string {
	code := strings.ToUpper(strings.TrimSpace(iso2))
	if len(code) != 2 || !isASCIIUpper(code[0]) || !isASCIIUpper(code[1]) {
		return Neutral
	}
	return string([]rune{
		rune(regionalIndicatorA + int(code[0]-'A')),
		rune(regionalIndicatorA + int(code[1]-'A')),
	})
}

// Resolve maps a federation code to its flag, falling back to Neutral.
func Resolve(code string) string {
	iso, ok := ISO2(code)
	if !ok {
		return Neutral
	}
	return Flag(iso)
}

func isASCIIUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
