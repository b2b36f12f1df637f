package response

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
)

// customerShape locates the ledger record node in one known layout.
type customerShape struct {
	name   string
	locate func(doc *etree.Document) *etree.Element
}

var customerShapes = []customerShape{
	{
		// LEDGER node carrying its identity in a NAME attribute.
		name: "attr-named",
		locate: func(doc *etree.Document) *etree.Element {
			for _, el := range doc.FindElements("//LEDGER") {
				if el.SelectAttrValue("NAME", "") != "" {
					return el
				}
			}
			return nil
		},
	},
	{
		// LEDGER node with a NAME child element.
		name: "child-named",
		locate: func(doc *etree.Document) *etree.Element {
			for _, el := range doc.FindElements("//LEDGER") {
				if childText(el, "NAME") != "" {
					return el
				}
			}
			return nil
		},
	},
}

// Customer extracts the single matching ledger record from raw. A response
// with no record yields (nil, nil): not found is a valid outcome, not a
// failure.
func (p *Parser) Customer(raw []byte) (*model.Customer, error) {
	doc, err := parse(raw)
	if err != nil {
		p.log.Warn("customer lookup response is not well-formed XML", zap.Error(err))
		return nil, nil
	}

	var ledger *etree.Element
	for _, shape := range customerShapes {
		if ledger = shape.locate(doc); ledger != nil {
			break
		}
	}
	if ledger == nil {
		return nil, nil
	}

	name := childText(ledger, "NAME")
	if name == "" {
		name = strings.TrimSpace(ledger.SelectAttrValue("NAME", ""))
	}

	customer := &model.Customer{
		ID:          name,
		Name:        name,
		LedgerName:  name,
		Phone:       childText(ledger, "LEDGERPHONE"),
		Mobile:      childText(ledger, "LEDGERMOBILE"),
		Email:       childText(ledger, "EMAIL"),
		GSTIN:       childText(ledger, "PARTYGSTIN"),
		ParentGroup: childText(ledger, "PARENT"),
	}
	customer.Address = extractAddress(ledger)
	customer.Address.PostalCode = childText(ledger, "PINCODE")

	// An explicit state field wins over a state guessed from the address.
	if state := childText(ledger, "LEDSTATENAME", "STATENAME"); state != "" {
		customer.Address.State = state
	}

	return customer, nil
}

// extractAddress splits the multi-line address field into positional lines:
// line1, line2, city, remainder. The remainder doubles as a state guess when
// no explicit state field is present.
func extractAddress(ledger *etree.Element) model.Address {
	var lines []string
	for _, el := range ledger.FindElements(".//ADDRESS") {
		if t := strings.TrimSpace(el.Text()); t != "" {
			lines = append(lines, t)
		}
	}

	var addr model.Address
	switch {
	case len(lines) >= 4:
		addr.Line1, addr.Line2, addr.City = lines[0], lines[1], lines[2]
		addr.State = strings.Join(lines[3:], " ")
	case len(lines) == 3:
		addr.Line1, addr.Line2, addr.City = lines[0], lines[1], lines[2]
	case len(lines) == 2:
		addr.Line1, addr.City = lines[0], lines[1]
	case len(lines) == 1:
		addr.Line1 = lines[0]
	}
	return addr
}
