package accounting

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/google/uuid"
)

var (
	creditSideWords = []string{"capital", "equity", "reserve", "surplus", "liabilit", "loan", "payable", "creditor", "borrowing", "overdraft", "provision", "duties", "tax"}
	fixedAssetWords = []string{"fixed asset", "plant", "machinery", "furniture", "building", "vehicle", "equipment", "land"}
	equityWords     = []string{"capital", "equity", "reserve", "surplus", "drawing"}
	liabilityWords  = []string{"liabilit", "loan", "payable", "creditor", "borrowing", "overdraft", "provision", "duties", "tax"}
	incomeWords     = []string{"income", "sales", "revenue"}
	expenseWords    = []string{"expense", "purchase", "cost"}

	nonCodeChars = regexp.MustCompile(`[^A-Z0-9]+`)
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// InferEntryType guesses the opening side of a ledger from its group and
// name: capital, equity and liability sounding names sit on the credit
// side, everything else on the debit side.
func InferEntryType(ledgerName, groupName string) domain.EntryType {
	group := strings.ToLower(groupName)
	if containsAny(group, creditSideWords) {
		return domain.Credit
	}
	if group == "" && containsAny(strings.ToLower(ledgerName), creditSideWords) {
		return domain.Credit
	}
	return domain.Debit
}

// InferGroupCategory maps a free-form group name onto a reporting category.
func InferGroupCategory(groupName string) domain.GroupCategory {
	g := strings.ToLower(groupName)
	switch {
	case containsAny(g, equityWords):
		return domain.Equity
	case containsAny(g, liabilityWords):
		return domain.Liability
	case containsAny(g, fixedAssetWords):
		return domain.FixedAsset
	case containsAny(g, incomeWords):
		return domain.Income
	case containsAny(g, expenseWords):
		return domain.Expense
	default:
		return domain.CurrentAsset
	}
}

// IsCashOrBank matches ledgers by name the way the dashboard classifies them.
func IsCashOrBank(accountName string) bool {
	n := strings.ToLower(accountName)
	return strings.Contains(n, "cash") || strings.Contains(n, "bank")
}

// CodeFromName derives an upper-case code from a display name,
// e.g. "HDFC Bank" -> "HDFC-BANK". Names with letters outside A-Z get a
// stable suffix hashed from the whole name so that distinct names never
// share a code, e.g. "कैश" -> "L-" and eight hex digits.
func CodeFromName(name string, maxLen int) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	code := strings.Trim(nonCodeChars.ReplaceAllString(upper, "-"), "-")
	if !dropsCharacters(upper) {
		return truncateCode(code, maxLen)
	}

	suffix := strings.ToUpper(uuid.NewSHA1(uuid.NameSpaceOID, []byte(upper)).String()[:8])
	if room := maxLen - len(suffix) - 1; maxLen > 0 && room <= 0 {
		code = ""
	} else if maxLen > 0 {
		code = truncateCode(code, room)
	}
	if code == "" {
		return truncateCode("L-"+suffix, maxLen)
	}
	return code + "-" + suffix
}

func truncateCode(code string, maxLen int) string {
	if maxLen > 0 && len(code) > maxLen {
		code = strings.TrimRight(code[:maxLen], "-")
	}
	return code
}

// dropsCharacters reports whether name has letters, digits or marks that
// the A-Z0-9 code alphabet cannot carry.
func dropsCharacters(name string) bool {
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			return true
		}
	}
	return false
}
