package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/internal/model"
)

func TestCustomer_Registration(t *testing.T) {
	c := &model.Customer{Name: "Acme"}
	assert.Equal(t, model.RegistrationUnregistered, c.Registration())

	c.GSTIN = "27AAPFU0939F1ZV"
	assert.Equal(t, model.RegistrationRegular, c.Registration())
}

func TestLineItem_Calculate(t *testing.T) {
	li := model.LineItem{
		Description: "Widget",
		Quantity:    decimal.NewFromInt(4),
		Rate:        decimal.RequireFromString("250.50"),
	}
	li.Calculate()
	assert.True(t, li.Amount.Equal(decimal.RequireFromString("1002")), "expected 1002, got %s", li.Amount)
}

func TestInvoice_CalculateTotals(t *testing.T) {
	inv := &model.Invoice{
		Items: []model.LineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(300)},
			{Description: "Gadget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(400)},
		},
	}

	inv.CalculateTotals()

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(1000)), "expected 1000, got %s", inv.Subtotal)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(1000)), "no tax components yet")

	inv.CGST = &model.TaxComponent{Rate: decimal.NewFromInt(9), Amount: decimal.NewFromInt(90)}
	inv.SGST = &model.TaxComponent{Rate: decimal.NewFromInt(9), Amount: decimal.NewFromInt(90)}
	inv.CalculateTotals()

	assert.True(t, inv.Total.Equal(decimal.NewFromInt(1180)), "expected 1180, got %s", inv.Total)
	assert.True(t, inv.TaxAmount().Equal(decimal.NewFromInt(180)))
}

func TestInvoice_CalculateTotals_IGST(t *testing.T) {
	inv := &model.Invoice{
		Items: []model.LineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1000)},
		},
		IGST: &model.TaxComponent{Rate: decimal.NewFromInt(18), Amount: decimal.NewFromInt(180)},
	}

	inv.CalculateTotals()

	assert.True(t, inv.Total.Equal(decimal.NewFromInt(1180)), "expected 1180, got %s", inv.Total)
}

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name    string
		gstin   string
		wantErr bool
	}{
		{"empty is unregistered", "", false},
		{"valid", "27AAPFU0939F1ZV", false},
		{"lowercase accepted", "27aapfu0939f1zv", false},
		{"too short", "27AAPFU0939F1Z", true},
		{"missing Z", "27AAPFU0939F1XV", true},
		{"garbage", "not-a-gstin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateGSTIN(tt.gstin)
			if tt.wantErr {
				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "gstin", verr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomer_Validate(t *testing.T) {
	valid := func() model.Customer {
		return model.Customer{
			Name:      "Acme Traders",
			CompanyID: "Demo Traders",
			Address:   model.Address{Line1: "12 MG Road"},
		}
	}

	c := valid()
	assert.NoError(t, c.Validate())

	c = valid()
	c.Name = "  "
	assert.Error(t, c.Validate())

	c = valid()
	c.CompanyID = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Address.Line1 = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.GSTIN = "bogus"
	assert.Error(t, c.Validate())
}

func TestLineItem_Validate(t *testing.T) {
	li := model.LineItem{
		Description: "Widget",
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.NewFromInt(100),
	}
	assert.NoError(t, li.Validate())

	li.Quantity = decimal.Zero
	assert.Error(t, li.Validate(), "quantity must be positive")

	li.Quantity = decimal.NewFromInt(1)
	li.Rate = decimal.NewFromInt(-5)
	assert.Error(t, li.Validate(), "rate cannot be negative")

	li.Rate = decimal.Zero
	assert.NoError(t, li.Validate(), "zero rate is a free line")
}

func TestInvoice_Validate(t *testing.T) {
	valid := func() model.Invoice {
		return model.Invoice{
			CustomerName: "Acme Traders",
			CompanyID:    "Demo Traders",
			Date:         time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			Items: []model.LineItem{
				{Description: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
			},
		}
	}

	inv := valid()
	assert.NoError(t, inv.Validate())

	inv = valid()
	inv.CustomerName = ""
	assert.Error(t, inv.Validate())

	inv = valid()
	inv.Date = time.Time{}
	assert.Error(t, inv.Validate())

	inv = valid()
	inv.Items = nil
	assert.Error(t, inv.Validate())

	inv = valid()
	inv.Items[0].Quantity = decimal.Zero
	assert.Error(t, inv.Validate(), "line item errors bubble up")
}
