package utils

import (
	"fmt"
	"strings"
)

// GSTIN layout: 2-digit state code, 10-character PAN, entity number,
// the letter "Z", and a mod-36 check character. 15 characters total.

// gstStateCodes maps GSTIN state-code prefixes to state names.
var gstStateCodes = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
}

// NormalizeGSTIN trims whitespace and uppercases a GSTIN.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// ValidateGSTIN checks structure and the mod-36 check character of a GSTIN.
func ValidateGSTIN(gstin string) error {
	g := NormalizeGSTIN(gstin)
	if len(g) != 15 {
		return fmt.Errorf("gstin %q: want 15 characters, got %d", gstin, len(g))
	}
	if _, ok := gstStateCodes[g[:2]]; !ok {
		return fmt.Errorf("gstin %q: unknown state code %q", gstin, g[:2])
	}
	// PAN segment: 5 letters, 4 digits, 1 letter.
	for i, c := range g[2:12] {
		isDigit := c >= '0' && c <= '9'
		isAlpha := c >= 'A' && c <= 'Z'
		wantDigit := i >= 5 && i <= 8
		if wantDigit && !isDigit {
			return fmt.Errorf("gstin %q: PAN digit expected at position %d", gstin, i+3)
		}
		if !wantDigit && !isAlpha {
			return fmt.Errorf("gstin %q: PAN letter expected at position %d", gstin, i+3)
		}
	}
	if c := g[12]; !(c >= '1' && c <= '9' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("gstin %q: invalid entity number %q", gstin, string(c))
	}
	if g[13] != 'Z' {
		return fmt.Errorf("gstin %q: position 14 must be 'Z'", gstin)
	}
	if want := gstinCheckChar(g[:14]); g[14] != want {
		return fmt.Errorf("gstin %q: check character mismatch (want %c)", gstin, want)
	}
	return nil
}

// GSTINState returns the state name encoded in a GSTIN's first two digits.
func GSTINState(gstin string) string {
	g := NormalizeGSTIN(gstin)
	if len(g) < 2 {
		return ""
	}
	return gstStateCodes[g[:2]]
}

const gstinAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// gstinCheckChar computes the mod-36 check character over the first 14
// characters, per the GSTN checksum scheme.
func gstinCheckChar(prefix string) byte {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		value := strings.IndexByte(gstinAlphabet, prefix[i])
		if value < 0 {
			return 0
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		product := value * factor
		sum += product/36 + product%36
	}
	return gstinAlphabet[(36-sum%36)%36]
}
