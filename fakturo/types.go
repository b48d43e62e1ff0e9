package fakturo

import (
	"fmt"
	"time"
)

// Customer represents a Fakturo client record. The API calls the resource
// "clients"; the Go type is named Customer to keep Client for the API
// client itself.
type Customer struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Street      string
	City        string
	Zip         string
	CountryCode string
	VATID       string
	BankAccount string
	Disabled    bool
	CreatedAt   time.Time
}

// Serialize produces the nested plain-data form of the customer. With
// forAPI set the result is shaped for a request payload: nested under the
// "client" key with server-assigned fields omitted.
func (c *Customer) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"name":         c.Name,
		"email":        emptyAsNil(c.Email),
		"phone":        emptyAsNil(c.Phone),
		"street":       emptyAsNil(c.Street),
		"city":         emptyAsNil(c.City),
		"zip":          emptyAsNil(c.Zip),
		"country_code": emptyAsNil(c.CountryCode),
		"vat_id":       emptyAsNil(c.VATID),
		"bank_account": emptyAsNil(c.BankAccount),
	}
	if !forAPI {
		data["id"] = c.ID
		data["disabled"] = c.Disabled
		if !c.CreatedAt.IsZero() {
			data["created_at"] = c.CreatedAt
		}
		return data
	}
	return map[string]any{"client": data}
}

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	ID        int64
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
	VATRate   float64
	Total     float64
}

// Serialize produces the plain-data form of the item.
func (it *InvoiceItem) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"name":     it.Name,
		"quantity": it.Quantity,
		"unit":     emptyAsNil(it.Unit),
		"price":    it.UnitPrice,
		"vat_rate": it.VATRate,
	}
	if !forAPI {
		data["id"] = it.ID
		data["total"] = it.Total
	}
	return data
}

// Payment is a payment recorded against an invoice.
type Payment struct {
	ID        int64
	InvoiceID int64
	Amount    float64
	Currency  string
	PaidOn    time.Time
	Note      string
}

// Serialize produces the plain-data form of the payment.
func (p *Payment) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"amount":   p.Amount,
		"currency": emptyAsNil(p.Currency),
		"note":     emptyAsNil(p.Note),
	}
	if !p.PaidOn.IsZero() {
		data["paid_on"] = p.PaidOn.Format(dateLayout)
	}
	if !forAPI {
		data["id"] = p.ID
		data["invoice_id"] = p.InvoiceID
		return data
	}
	return map[string]any{"payment": data}
}

// Invoice represents a Fakturo invoice, optionally carrying its items,
// payments and the full customer record.
type Invoice struct {
	ID           int64
	IID          int64 // sequential public invoice number
	Number       string
	CustomerID   int64
	Customer     *Customer
	State        State
	IssuedOn     time.Time
	DueOn        time.Time
	DeliveryFrom time.Time
	DeliveryTo   time.Time
	Currency     string
	Note         string
	Items        []InvoiceItem
	Payments     []Payment

	TotalWithoutVAT float64
	TotalVAT        float64
	TotalWithVAT    float64

	CreatedAt time.Time
}

// Validate checks caller-supplied field consistency before a request is
// built. The delivery period is a pair: setting exactly one bound is an
// error.
func (inv *Invoice) Validate() error {
	if inv.DeliveryFrom.IsZero() != inv.DeliveryTo.IsZero() {
		return fmt.Errorf("%w: delivery_from and delivery_to must be set together", ErrInvalidArgument)
	}
	return nil
}

// Serialize produces the nested plain-data form of the invoice. With
// forAPI set the result is shaped for a request payload: nested under the
// "invoice" key, server-assigned fields (id, totals, timestamps) omitted
// and dates rendered in the API's date format.
func (inv *Invoice) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"number":   emptyAsNil(inv.Number),
		"currency": emptyAsNil(inv.Currency),
		"note":     emptyAsNil(inv.Note),
	}
	if inv.CustomerID != 0 {
		data["client_id"] = inv.CustomerID
	}
	if !inv.State.IsZero() {
		data["state"] = inv.State.String()
	}
	for key, date := range map[string]time.Time{
		"issued_on":     inv.IssuedOn,
		"due_on":        inv.DueOn,
		"delivery_from": inv.DeliveryFrom,
		"delivery_to":   inv.DeliveryTo,
	} {
		if !date.IsZero() {
			data[key] = date.Format(dateLayout)
		}
	}
	if len(inv.Items) > 0 {
		items := make([]any, 0, len(inv.Items))
		for i := range inv.Items {
			items = append(items, inv.Items[i].Serialize(forAPI))
		}
		data["items"] = items
	}

	if !forAPI {
		data["id"] = inv.ID
		data["iid"] = inv.IID
		data["total_without_vat"] = inv.TotalWithoutVAT
		data["total_vat"] = inv.TotalVAT
		data["total_with_vat"] = inv.TotalWithVAT
		if inv.Customer != nil {
			data["client"] = inv.Customer.Serialize(false)
		}
		if len(inv.Payments) > 0 {
			payments := make([]any, 0, len(inv.Payments))
			for i := range inv.Payments {
				payments = append(payments, inv.Payments[i].Serialize(false))
			}
			data["payments"] = payments
		}
		return data
	}
	return map[string]any{"invoice": data}
}

// IsPaid reports whether the invoice has reached the paid state.
func (inv *Invoice) IsPaid() bool {
	return inv.State.String() == statePaid
}

// IsOverdue reports whether an unpaid invoice is past its due date.
func (inv *Invoice) IsOverdue() bool {
	return !inv.IsPaid() && !inv.DueOn.IsZero() && inv.DueOn.Before(time.Now())
}

// Product represents an entry in the Fakturo product catalog.
type Product struct {
	ID       int64
	Name     string
	Code     string
	Price    float64
	Currency string
	Unit     string
	VATRate  float64
	Stock    float64
}

// Serialize produces the nested plain-data form of the product.
func (p *Product) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"name":     p.Name,
		"code":     emptyAsNil(p.Code),
		"price":    p.Price,
		"currency": emptyAsNil(p.Currency),
		"unit":     emptyAsNil(p.Unit),
		"vat_rate": p.VATRate,
	}
	if !forAPI {
		data["id"] = p.ID
		data["stock"] = p.Stock
		return data
	}
	return map[string]any{"product": data}
}

// Mail describes an invoice email to send.
type Mail struct {
	To      string
	Cc      string
	Subject string
	Message string
}

// Serialize produces the nested plain-data form of the mail.
func (m *Mail) Serialize(forAPI bool) map[string]any {
	data := map[string]any{
		"email":   m.To,
		"cc":      emptyAsNil(m.Cc),
		"subject": emptyAsNil(m.Subject),
		"message": emptyAsNil(m.Message),
	}
	if !forAPI {
		return data
	}
	return map[string]any{"mail": data}
}

// emptyAsNil maps empty strings to nil so the encoder omits them.
func emptyAsNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
