// Package upi rebuilds gateway-returned upi:// links into a minimal canonical
// form. Gateways attach extra fields (merchant codes, signatures, transaction
// references) that some payer apps reject for unverified payee addresses, so
// only pa, pn, am, cu and tn are kept.
package upi

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const currencyCode = "INR"

var (
	amountPattern   = regexp.MustCompile(`([?&])am=[^&]*`)
	currencyPattern = regexp.MustCompile(`([?&])cu=[^&]*`)
)

// Canonical parses a upi:// link and re-encodes it with only the payee
// address, payee name, formatted amount, currency and note. amount must
// already be formatted for display (two decimal places).
func Canonical(raw string, amount string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	q := u.Query()

	pa := q.Get("pa")
	if pa == "" {
		return "", errors.New("upi link has no payee address")
	}

	pn := q.Get("pn")
	if pn == "" {
		pn = "Merchant"
	}

	tn := q.Get("tn")
	if tn == "" {
		tn = "Payment"
	}

	link := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s&tn=%s",
		pa, url.QueryEscape(pn), amount, currencyCode, url.QueryEscape(tn))

	return link, nil
}

// PatchAmount is the fallback for links Canonical cannot parse: it rewrites
// just the amount and currency fields in place, appending them if absent,
// and leaves everything else untouched.
func PatchAmount(raw string, amount string) string {
	link := raw

	if amountPattern.MatchString(link) {
		link = amountPattern.ReplaceAllString(link, "${1}am="+amount)
	} else {
		link += sep(link) + "am=" + amount
	}

	if currencyPattern.MatchString(link) {
		link = currencyPattern.ReplaceAllString(link, "${1}cu="+currencyCode)
	} else {
		link += sep(link) + "cu=" + currencyCode
	}

	return link
}

func sep(link string) string {
	if strings.ContainsRune(link, '?') {
		return "&"
	}
	return "?"
}
