// Package validation holds the pure shipping/payment checks run before an
// order is accepted. It has no dependency on storage or transport.
package validation

import (
	"regexp"
	"strings"

	"github.com/sandeepk/magshop/internal/models"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	phonePattern = regexp.MustCompile(`^[789]\d{9}$`)
	cityPattern  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	statePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)
	cardPattern  = regexp.MustCompile(`^\d{16}$`)
)

const (
	MsgName  = "Name must contain only letters."
	MsgPhone = "Phone must be 10 digits starting with 7, 8, or 9."
	MsgCity  = "City must contain only letters."
	MsgState = "State must contain only letters."
	MsgCard  = "Card number must be exactly 16 digits."
)

// Order checks every shipping/payment field and reports all violations in
// one pass, one message per failing rule in a fixed order. An empty
// return value means the order is valid.
func Order(o *models.Order) string {
	var errs []string

	if !namePattern.MatchString(o.CustomerName) {
		errs = append(errs, MsgName)
	}
	if !phonePattern.MatchString(o.Phone) {
		errs = append(errs, MsgPhone)
	}
	if !cityPattern.MatchString(o.City) {
		errs = append(errs, MsgCity)
	}
	if !statePattern.MatchString(o.State) {
		errs = append(errs, MsgState)
	}
	if !cardPattern.MatchString(o.CardNumber) {
		errs = append(errs, MsgCard)
	}

	return strings.Join(errs, " ")
}
