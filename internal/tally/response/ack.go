package response

import (
	"github.com/rezonia/tally-bridge/internal/model"
)

// Ack is the engine's acknowledgement of a mutating call.
type Ack struct {
	// VoucherNumber is the authoritative number the engine assigned,
	// when the response carries one.
	VoucherNumber string
}

// Ack checks a mutating call's response. Any error marker anywhere in the
// document is a failure, even alongside a success marker, and the failure
// message carries the full concatenated marker text. A missing success
// marker is also a failure.
func (p *Parser) Ack(operation string, raw []byte) (*Ack, error) {
	doc, err := parse(raw)
	if err != nil {
		return nil, model.NewDomainError(operation, "response is not well-formed XML: "+err.Error())
	}

	if text, found := errorText(doc); found {
		return nil, model.NewDomainError(operation, text)
	}

	created := false
	for _, marker := range []string{"CREATED", "ALTERED"} {
		for _, el := range doc.FindElements("//" + marker) {
			if el.Text() == "1" {
				created = true
			}
		}
	}
	if !created {
		return nil, model.NewDomainError(operation, "engine did not confirm the record was created")
	}

	ack := &Ack{}
	for _, tag := range []string{"VOUCHERNUMBER", "LASTVCHID", "VCHNUMBER"} {
		if el := doc.FindElement("//" + tag); el != nil {
			ack.VoucherNumber = el.Text()
			break
		}
	}
	return ack, nil
}
