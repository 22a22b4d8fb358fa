package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// rule is one predicate+message pair. Rules for a field run in order and
// every failing rule records its message; evaluation never short-circuits.
type rule struct {
	ok      func(string) bool
	message string
}

func run(rules []rule, value string) []string {
	var msgs []string
	for _, r := range rules {
		if !r.ok(value) {
			msgs = append(msgs, r.message)
		}
	}
	return msgs
}

// vld backs the syntactic checks (email format, bounds) that
// go-playground/validator already encodes.
var vld = validator.New()

func tagOK(value, tag string) bool {
	return vld.Var(value, tag) == nil
}

/*
====================================
PASSWORD
====================================
*/

// passwordSymbols is the punctuation set that satisfies the symbol
// character-class requirement.
const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:'\",.<>?/`~\\"

// commonPasswords is the deny-list checked case-insensitively against the
// whole password.
var commonPasswords = []string{
	"password",
	"password1",
	"password123",
	"12345678",
	"123456789",
	"1234567890",
	"qwerty123",
	"letmein1",
	"welcome1",
	"iloveyou",
	"sunshine",
	"princess",
	"admin123",
	"football",
	"baseball",
	"monkey123",
	"dragon123",
	"trustno1",
}

// keyboardSequences are rejected when they appear anywhere in the password,
// case-insensitively.
var keyboardSequences = []string{
	"qwerty",
	"asdfgh",
	"zxcvbn",
	"qazwsx",
	"1q2w3e",
	"12345",
	"54321",
	"09876",
	"abcdef",
}

var passwordRules = []rule{
	{func(s string) bool { return len([]rune(s)) >= 8 }, "must be at least 8 characters"},
	{func(s string) bool { return len([]rune(s)) <= 128 }, "must be at most 128 characters"},
	{hasClass(unicode.IsUpper), "must contain an uppercase letter"},
	{hasClass(unicode.IsLower), "must contain a lowercase letter"},
	{hasClass(unicode.IsDigit), "must contain a digit"},
	{func(s string) bool { return strings.ContainsAny(s, passwordSymbols) }, "must contain a symbol"},
	{notCommon, "is too common"},
	{noTripleRepeat, "must not repeat the same character 3 or more times in a row"},
	{noKeyboardSequence, "must not contain a keyboard sequence"},
}

func hasClass(class func(rune) bool) func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if class(r) {
				return true
			}
		}
		return false
	}
}

func notCommon(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range commonPasswords {
		if lower == p {
			return false
		}
	}
	return true
}

func noTripleRepeat(s string) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
			if count >= 3 {
				return false
			}
		} else {
			prev = r
			count = 1
		}
	}
	return true
}

func noKeyboardSequence(s string) bool {
	lower := strings.ToLower(s)
	for _, seq := range keyboardSequences {
		if strings.Contains(lower, seq) {
			return false
		}
	}
	return true
}

// Password checks the password policy and returns every violated rule.
func Password(raw string) []string {
	return run(passwordRules, raw)
}

/*
====================================
EMAIL
====================================
*/

var emailRules = []rule{
	{func(s string) bool { return s != "" }, "is required"},
	{func(s string) bool { return s == "" || tagOK(s, "email") }, "must be a valid email address"},
	{func(s string) bool { return len(s) <= 255 }, "must be at most 255 characters"},
}

// Email normalizes (trim, lowercase) and checks an email address.
func Email(raw string) (string, []string) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	return norm, run(emailRules, norm)
}

/*
====================================
FULL NAME
====================================
*/

var nameCharsRe = regexp.MustCompile(`^[\p{L} .'-]+$`)

var fullNameRules = []rule{
	{func(s string) bool { return s != "" }, "is required"},
	{func(s string) bool { return s == "" || len([]rune(s)) >= 2 }, "must be at least 2 characters"},
	{func(s string) bool { return len([]rune(s)) <= 100 }, "must be at most 100 characters"},
	{func(s string) bool { return s == "" || nameCharsRe.MatchString(s) },
		"may only contain letters, spaces, hyphens, apostrophes and periods"},
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// FullName trims, collapses internal whitespace runs to single spaces, and
// checks the allowed character set.
func FullName(raw string) (string, []string) {
	norm := spaceRunRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	return norm, run(fullNameRules, norm)
}

/*
====================================
PHONE
====================================
*/

// phoneRe accepts an optional leading +, a first digit 1-9, and 7-15 digits
// total. The 7-digit floor matches the shortest assignable international
// number and rejects obvious junk like "12345" on digit count.
var phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)

var phoneStripper = strings.NewReplacer("(", "", ")", "", "-", "", " ", "")

// Phone strips formatting characters and checks the international pattern.
// Empty input is valid: the field is optional.
func Phone(raw string) (string, []string) {
	norm := phoneStripper.Replace(strings.TrimSpace(raw))
	if norm == "" {
		return "", nil
	}
	if !phoneRe.MatchString(norm) {
		return norm, []string{"must be a valid international phone number"}
	}
	return norm, nil
}

/*
====================================
LANGUAGE
====================================
*/

// Supported language preferences.
const (
	LangEnglish = "en"
	LangAmharic = "am"
)

// Language validates the language preference enum, defaulting to English
// when absent.
func Language(raw string) (string, []string) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if norm == "" {
		return LangEnglish, nil
	}
	if norm != LangEnglish && norm != LangAmharic {
		return norm, []string{"must be one of: en, am"}
	}
	return norm, nil
}

/*
====================================
SLUG
====================================
*/

var slugRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

var slugRules = []rule{
	{func(s string) bool { return s != "" }, "is required"},
	{func(s string) bool { return len(s) <= 255 }, "must be at most 255 characters"},
	{func(s string) bool { return s == "" || slugRe.MatchString(s) },
		"may only contain lowercase letters, digits and hyphens, and may not start or end with a hyphen"},
}

// Slug checks a URL slug. Slugs are not normalized: authors pick them
// deliberately and a silent rewrite would desynchronize published links.
func Slug(raw string) []string {
	return run(slugRules, raw)
}

/*
====================================
TAGS
====================================
*/

// Tags parses an optional comma-separated tag string. Empty tags are
// dropped; each surviving tag must be 2-50 characters. The canonical form
// is the comma-joined remainder, or empty when nothing survives.
func Tags(raw string) (string, []string) {
	var kept []string
	var msgs []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if n := len([]rune(tag)); n < 2 || n > 50 {
			msgs = append(msgs, "tag "+strconv.Quote(tag)+" must be 2-50 characters")
			continue
		}
		kept = append(kept, tag)
	}
	return strings.Join(kept, ","), msgs
}
