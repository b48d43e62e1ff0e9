package fakturo

import "context"

// API defines the interface for Fakturo operations
type API interface {
	// Account operations
	GetAPIToken(ctx context.Context) (string, error)
	VerifyVAT(ctx context.Context, vatID string) (bool, error)

	// Client record operations
	GetCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, customer *Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	DisableCustomer(ctx context.Context, id int64) error
	IsEuropean(ctx context.Context, countryCode string) (bool, error)
	GetCustomerInvoices(ctx context.Context, id int64) ([]*Invoice, error)

	// Invoice operations
	GetInvoices(ctx context.Context, filters ...string) ([]*Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	GetInvoiceByNumber(ctx context.Context, iid int64) (*Invoice, error)
	CreateInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error)
	UpdateInvoice(ctx context.Context, invoice *Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error
	DownloadPDF(ctx context.Context, id int64) ([]byte, error)
	CreateCreditNote(ctx context.Context, invoiceID int64, reason string) (*Invoice, error)
	SendMail(ctx context.Context, invoiceID int64, mail *Mail) error
	MarkSent(ctx context.Context, invoiceID int64) error
	AddPayment(ctx context.Context, invoiceID int64, payment *Payment) (*Payment, error)
	SendReminder(ctx context.Context, invoiceID int64) error
	VATRequired(ctx context.Context) (bool, error)

	// Payment operations
	ProcessPaymentFile(ctx context.Context, filePath string) ([]*Payment, error)

	// Product operations
	GetProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
}
