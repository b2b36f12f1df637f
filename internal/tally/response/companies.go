package response

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
)

// companyShape is one known layout of the company listing response.
// Shapes are tried in order; the first match extracts.
type companyShape struct {
	name    string
	matches func(doc *etree.Document) bool
	extract func(doc *etree.Document) []model.Company
}

var companyShapes = []companyShape{
	{
		// Nested company nodes with separate name/id sub-nodes. Must be
		// probed before the flat shape: nested documents also contain
		// name-bearing nodes.
		name: "nested",
		matches: func(doc *etree.Document) bool {
			return len(doc.FindElements("//COMPANY")) > 0
		},
		extract: func(doc *etree.Document) []model.Company {
			var companies []model.Company
			for _, el := range doc.FindElements("//COMPANY") {
				name := childText(el, "NAME", "COMPANYNAME")
				if name == "" {
					name = strings.TrimSpace(el.SelectAttrValue("NAME", ""))
				}
				if name == "" {
					continue
				}
				id := childText(el, "ID", "COMPANYNUMBER")
				if id == "" {
					id = name
				}
				companies = append(companies, model.Company{ID: id, Name: name})
			}
			return companies
		},
	},
	{
		// Flat list of name-bearing nodes.
		name: "flat",
		matches: func(doc *etree.Document) bool {
			return len(doc.FindElements("//COMPANYNAME")) > 0
		},
		extract: func(doc *etree.Document) []model.Company {
			var companies []model.Company
			for _, el := range doc.FindElements("//COMPANYNAME") {
				name := strings.TrimSpace(el.Text())
				if name == "" {
					continue
				}
				companies = append(companies, model.Company{ID: name, Name: name})
			}
			return companies
		},
	},
}

// Companies extracts the company list from raw. An unrecognizable document
// yields an empty list, not an error; the caller decides whether an
// accompanying error marker means "not connected".
func (p *Parser) Companies(raw []byte) ([]model.Company, error) {
	doc, err := parse(raw)
	if err != nil {
		p.log.Warn("company listing is not well-formed XML", zap.Error(err))
		return nil, nil
	}

	for _, shape := range companyShapes {
		if shape.matches(doc) {
			return shape.extract(doc), nil
		}
	}

	p.log.Warn("company listing matched no known response shape")
	return nil, nil
}
