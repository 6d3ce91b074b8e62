package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
	title    = cases.Title(language.Und, cases.NoLower)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML",
		"HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS",
		"RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP",
		"UI", "UID", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XMPP",
		"XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym registers a word so the naming helpers keep it uppercase
// when converting between identifier styles.
func AddAcronym(word string) {
	word = strings.ToUpper(word)
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// snake converts the given identifier into a snake_case column name.
//
//	Username  => username
//	FullName  => full_name
//	UserID    => user_id
//	HTTPCode  => http_code
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, the current
		// letter is uppercase, and the previous letter is lowercase
		// ("UserInfo"), or the next letter is lowercase at the end of
		// an acronym run ("HTTPCode").
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteByte('_')
			}
		}
		b.WriteString(strings.ToLower(string(s[i])))
	}
	return b.String()
}

// pascal converts the given column name into a PascalCase identifier,
// keeping registered acronyms uppercase.
//
//	user_info => UserInfo
//	user_id   => UserID
//	api_url   => APIURL
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	return pascalWords(words)
}

func pascalWords(words []string) string {
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, "")
}

// camel converts the given column name into a camelCase identifier.
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 1 {
		return strings.ToLower(words[0])
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

// receiver returns the receiver name for the given type name: the first
// letter of each of its words.
//
//	User       => u
//	UserQuery  => uq
//	HTTPClient => hc
func receiver(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if s == "" {
		return "_"
	}
	var b strings.Builder
	for _, w := range strings.Split(snake(s), "_") {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	return b.String()
}

// plural returns the plural form of the given name. Names the ruleset
// cannot pluralize get a "Slice" suffix so the result is always distinct
// from the input.
func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		p += "Slice"
	}
	return p
}
