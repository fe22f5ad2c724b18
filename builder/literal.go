package builder

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/heshanpadmasiri/groovyast/ast"
)

var errMalformedNumber = errors.New("malformed numeric literal")

// parseInteger decodes integer literal text, optionally negated. Without a
// suffix the smallest of int, long and BigInteger that holds the value wins.
func parseInteger(text string) (*ast.ConstantExpr, error) {
	s := strings.ReplaceAll(text, "_", "")
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
	}

	var suffix byte
	switch last := s[len(s)-1]; last {
	case 'i', 'I', 'l', 'L', 'g', 'G':
		suffix = last | 0x20
		s = s[:len(s)-1]
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}

	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
	}
	if negative {
		v.Neg(v)
	}

	c := &ast.ConstantExpr{DirectType: !negative}
	bits := bitLength(v)
	switch {
	case suffix == 'i' || (suffix == 0 && bits <= 31):
		if bits > 31 {
			return nil, fmt.Errorf("%w: %q does not fit in an int", errMalformedNumber, text)
		}
		c.Value, c.Type = int32(v.Int64()), ast.TypeInt
	case suffix == 'l' || (suffix == 0 && bits <= 63):
		if bits > 63 {
			return nil, fmt.Errorf("%w: %q does not fit in a long", errMalformedNumber, text)
		}
		c.Value, c.Type = v.Int64(), ast.TypeLong
	default:
		c.Value, c.Type = v, ast.TypeBigInteger
	}
	return c, nil
}

// bitLength matches the two's complement bit length of the JVM, so the
// smallest negative int still counts as 31 bits.
func bitLength(v *big.Int) int {
	if v.Sign() >= 0 {
		return v.BitLen()
	}
	x := new(big.Int).Neg(v)
	return x.Sub(x, big.NewInt(1)).BitLen()
}

// parseDecimal decodes floating point literal text, optionally negated.
// Suffix f gives float, d gives double and anything else BigDecimal.
func parseDecimal(text string) (*ast.ConstantExpr, error) {
	s := strings.ReplaceAll(text, "_", "")
	negative := strings.HasPrefix(s, "-")
	c := &ast.ConstantExpr{DirectType: !negative}
	if s == "" || s == "-" {
		return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
	}

	unsigned := strings.TrimPrefix(s, "-")
	hex := strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X")
	suffix := s[len(s)-1] | 0x20
	switch {
	case suffix == 'f':
		f, err := strconv.ParseFloat(s[:len(s)-1], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
		}
		c.Value, c.Type = float32(f), ast.TypeFloat
	case suffix == 'd' || hex:
		if suffix == 'd' {
			s = s[:len(s)-1]
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
		}
		c.Value, c.Type = f, ast.TypeDouble
	default:
		if suffix == 'g' {
			s = s[:len(s)-1]
		}
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errMalformedNumber, text)
		}
		c.Value, c.Type = r, ast.TypeBigDecimal
	}
	return c, nil
}

// removeCR normalises line endings to \n
func removeCR(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// decodeString turns quoted literal text into its value
func decodeString(text string) string {
	switch {
	case strings.HasPrefix(text, `"""`) || strings.HasPrefix(text, `'''`):
		text = removeCR(text)
		if len(text) <= 6 {
			return ""
		}
		return replaceEscapes(text[3 : len(text)-3])
	case strings.HasPrefix(text, "$/"):
		if len(text) <= 4 {
			return ""
		}
		return replaceDollarSlashyEscapes(text[2 : len(text)-2])
	case strings.HasPrefix(text, "/"):
		if len(text) <= 2 {
			return ""
		}
		return replaceSlashyEscapes(text[1 : len(text)-1])
	default:
		if len(text) <= 2 {
			return ""
		}
		return replaceEscapes(text[1 : len(text)-1])
	}
}

// replaceSlashyEscapes decodes only unicode escapes and \/
func replaceSlashyEscapes(s string) string {
	s = replaceUnicodeEscapes(s)
	return strings.ReplaceAll(s, `\/`, "/")
}

func replaceDollarSlashyEscapes(s string) string {
	s = replaceUnicodeEscapes(s)
	s = strings.ReplaceAll(s, "$$", "$")
	return strings.ReplaceAll(s, "$/", "/")
}

func replaceUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 'u' {
			if r, n, ok := readUnicodeEscape(s[i+1:]); ok {
				sb.WriteRune(r)
				i += n
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// readUnicodeEscape reads u+XXXX and returns the rune and the number of bytes
// consumed.
func readUnicodeEscape(s string) (rune, int, bool) {
	n := 0
	for n < len(s) && s[n] == 'u' {
		n++
	}
	if n+4 > len(s) {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[n:n+4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), n + 4, true
}

var simpleEscapes = map[byte]string{
	'b':  "\b",
	't':  "\t",
	'n':  "\n",
	'f':  "\f",
	'r':  "\r",
	's':  " ",
	'"':  "\"",
	'\'': "'",
	'\\': "\\",
	'$':  "$",
}

// replaceEscapes decodes the escapes of quoted strings, including octal and
// unicode escapes and backslash line continuations.
func replaceEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		next := s[i+1]
		if rep, ok := simpleEscapes[next]; ok {
			sb.WriteString(rep)
			i++
			continue
		}
		switch {
		case next == '\n':
			i++
		case next == 'u':
			r, n, ok := readUnicodeEscape(s[i+1:])
			if !ok {
				sb.WriteByte(c)
				continue
			}
			sb.WriteRune(r)
			i += n
		case next >= '0' && next <= '7':
			maxDigits := 2
			if next <= '3' {
				maxDigits = 3
			}
			j := i + 1
			for j < len(s) && j < i+1+maxDigits && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// decodeChar decodes a character literal into a one character string
func decodeChar(text string) string {
	if len(text) <= 2 {
		return ""
	}
	return replaceEscapes(text[1 : len(text)-1])
}

// interpolated string parts keep the opening quote on the first part, the
// $ on every part but the last and the closing quote on the last part.

func cleanGStringStart(text string) string {
	if strings.HasPrefix(text, `"""`) {
		text = removeCR(text)[2:]
	}
	text = replaceEscapes(text)
	if len(text) <= 2 {
		return ""
	}
	return text[1 : len(text)-1]
}

func cleanGStringPart(text string) string {
	text = replaceEscapes(removeCR(text))
	if len(text) <= 1 {
		return ""
	}
	return text[:len(text)-1]
}

func cleanGStringEnd(text string) string {
	if strings.HasSuffix(text, `"""`) {
		text = removeCR(text)
		text = text[:len(text)-2]
	}
	text = replaceEscapes(text)
	if len(text) <= 1 {
		return ""
	}
	return text[:len(text)-1]
}
