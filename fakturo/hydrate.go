package fakturo

import (
	"strconv"
	"time"
)

// dateLayout is the API's date format.
const dateLayout = "2006-01-02"

// CustomerFromMap hydrates a customer from a decoded response structure.
// Unknown keys are ignored and absent keys leave zero values.
func CustomerFromMap(data map[string]any) *Customer {
	c := &Customer{}
	for key, raw := range data {
		switch key {
		case "id":
			c.ID = rawInt(raw)
		case "name":
			c.Name = rawString(raw)
		case "email":
			c.Email = rawString(raw)
		case "phone":
			c.Phone = rawString(raw)
		case "street":
			c.Street = rawString(raw)
		case "city":
			c.City = rawString(raw)
		case "zip":
			c.Zip = rawString(raw)
		case "country_code":
			c.CountryCode = rawString(raw)
		case "vat_id":
			c.VATID = rawString(raw)
		case "bank_account":
			c.BankAccount = rawString(raw)
		case "disabled":
			c.Disabled = rawBool(raw)
		case "created_at":
			c.CreatedAt = rawTime(raw)
		}
	}
	return c
}

// InvoiceItemFromMap hydrates a single invoice line.
func InvoiceItemFromMap(data map[string]any) *InvoiceItem {
	it := &InvoiceItem{}
	for key, raw := range data {
		switch key {
		case "id":
			it.ID = rawInt(raw)
		case "name":
			it.Name = rawString(raw)
		case "quantity":
			it.Quantity = rawFloat(raw)
		case "unit":
			it.Unit = rawString(raw)
		case "price":
			it.UnitPrice = rawFloat(raw)
		case "vat_rate":
			it.VATRate = rawFloat(raw)
		case "total":
			it.Total = rawFloat(raw)
		}
	}
	return it
}

// PaymentFromMap hydrates a payment.
func PaymentFromMap(data map[string]any) *Payment {
	p := &Payment{}
	for key, raw := range data {
		switch key {
		case "id":
			p.ID = rawInt(raw)
		case "invoice_id":
			p.InvoiceID = rawInt(raw)
		case "amount":
			p.Amount = rawFloat(raw)
		case "currency":
			p.Currency = rawString(raw)
		case "paid_on":
			p.PaidOn = rawTime(raw)
		case "note":
			p.Note = rawString(raw)
		}
	}
	return p
}

// InvoiceFromMap hydrates an invoice, including nested items, payments and
// the embedded customer when the response carries them.
func InvoiceFromMap(data map[string]any) *Invoice {
	inv := &Invoice{}
	for key, raw := range data {
		switch key {
		case "id":
			inv.ID = rawInt(raw)
		case "iid":
			inv.IID = rawInt(raw)
		case "number":
			inv.Number = rawString(raw)
		case "client_id":
			inv.CustomerID = rawInt(raw)
		case "client":
			if nested, ok := raw.(map[string]any); ok {
				inv.Customer = CustomerFromMap(nested)
			}
		case "state":
			if state, err := NewState(rawString(raw)); err == nil {
				inv.State = state
			}
		case "issued_on":
			inv.IssuedOn = rawTime(raw)
		case "due_on":
			inv.DueOn = rawTime(raw)
		case "delivery_from":
			inv.DeliveryFrom = rawTime(raw)
		case "delivery_to":
			inv.DeliveryTo = rawTime(raw)
		case "currency":
			inv.Currency = rawString(raw)
		case "note":
			inv.Note = rawString(raw)
		case "total_without_vat":
			inv.TotalWithoutVAT = rawFloat(raw)
		case "total_vat":
			inv.TotalVAT = rawFloat(raw)
		case "total_with_vat":
			inv.TotalWithVAT = rawFloat(raw)
		case "created_at":
			inv.CreatedAt = rawTime(raw)
		case "items":
			for _, elem := range rawList(raw) {
				inv.Items = append(inv.Items, *InvoiceItemFromMap(elem))
			}
		case "payments":
			for _, elem := range rawList(raw) {
				inv.Payments = append(inv.Payments, *PaymentFromMap(elem))
			}
		}
	}
	return inv
}

// ProductFromMap hydrates a product.
func ProductFromMap(data map[string]any) *Product {
	p := &Product{}
	for key, raw := range data {
		switch key {
		case "id":
			p.ID = rawInt(raw)
		case "name":
			p.Name = rawString(raw)
		case "code":
			p.Code = rawString(raw)
		case "price":
			p.Price = rawFloat(raw)
		case "currency":
			p.Currency = rawString(raw)
		case "unit":
			p.Unit = rawString(raw)
		case "vat_rate":
			p.VATRate = rawFloat(raw)
		case "stock":
			p.Stock = rawFloat(raw)
		}
	}
	return p
}

func rawString(v any) string {
	s, _ := v.(string)
	return s
}

func rawBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func rawFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	}
	return 0
}

func rawInt(v any) int64 {
	switch val := v.(type) {
	case float64:
		return int64(val)
	case int64:
		return val
	case int:
		return int64(val)
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	}
	return 0
}

// rawTime parses a date-like field from either an ISO-ish string or a
// Unix timestamp.
func rawTime(v any) time.Time {
	switch val := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339, dateLayout} {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
		if secs, err := strconv.ParseInt(val, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC()
		}
	case float64:
		return time.Unix(int64(val), 0).UTC()
	case int64:
		return time.Unix(val, 0).UTC()
	}
	return time.Time{}
}

// rawList filters a decoded array down to its object elements.
func rawList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, elem := range list {
		if m, ok := elem.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
