package planilha

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeTexto normaliza texto livre para matching: maiúsculas, sem
// acentuação, pontuação vira espaço, espaços colapsados.
func NormalizeTexto(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// NormalizeChave normaliza uma célula para comparação de cabeçalho:
// minúsculas, sem acentos, somente alfanuméricos.
func NormalizeChave(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	var b strings.Builder
	b.Grow(len(result))
	for _, r := range strings.ToLower(result) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseValorBR interpreta um número em formato brasileiro ("1.234,56").
// Nunca falha: entrada vazia ou ilegível vira 0.
func ParseValorBR(val string) float64 {
	f, _ := ParseValorBROpcional(val)
	return f
}

// ParseValorBROpcional é a variante que distingue "não interpretável" de zero.
func ParseValorBROpcional(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}

	var filtered []rune
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return 0, false
	}

	// remove pontos de milhar (ponto seguido de exatamente três dígitos)
	out := make([]rune, 0, len(filtered))
	for i := 0; i < len(filtered); i++ {
		if filtered[i] == '.' {
			n := 0
			for j := i + 1; j < len(filtered) && filtered[j] >= '0' && filtered[j] <= '9'; j++ {
				n++
			}
			if n == 3 {
				continue
			}
		}
		out = append(out, filtered[i])
	}
	s = strings.ReplaceAll(string(out), ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// FormatarDuasCasas formata um valor com duas casas decimais e vírgula, sem
// separador de milhar ("19943,73").
func FormatarDuasCasas(val float64) string {
	return strings.Replace(strconv.FormatFloat(val, 'f', 2, 64), ".", ",", 1)
}

// ParseDataBR reconhece datas D/M/AAAA e reescreve como AAAA-MM-DD. Seriais de
// Excel dentro de uma janela plausível (1995..2028) também são aceitos. Qualquer
// outro valor volta inalterado para o chamador decidir.
func ParseDataBR(val string) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return val
	}
	if t, err := time.Parse("2/1/2006", s); err == nil {
		return t.Format("2006-01-02")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 35000 && f < 47000 {
		return serialExcelParaData(f).Format("2006-01-02")
	}
	return val
}

func serialExcelParaData(serial float64) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}

// SanitizarCSV remove caracteres de controle e quebras de linha embutidas de
// um campo que será reexportado.
func SanitizarCSV(s string) string {
	if s == "" {
		return ""
	}

	start := 0
	end := len(s)
	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start >= end {
		return ""
	}

	var b strings.Builder
	b.Grow(end - start)
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(s[i:end])
		i += size
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < 32 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
