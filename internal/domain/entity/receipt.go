package entity

// ReceiptHeader is printed at the top of a booking ticket.
type ReceiptHeader struct {
	ShopName   string `json:"shop_name"`
	BranchName string `json:"branch_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NTNNumber  string `json:"ntn_number,omitempty"`
}

// ReceiptLine is a single garment line on a ticket.
type ReceiptLine struct {
	Name      string `json:"name"`
	Units     int    `json:"units"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// Receipt is the printable view of a booking. It is composed at print time and
// never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNumber string        `json:"receipt_number"`
	BookingDate   string        `json:"booking_date"`
	DeliveryDate  string        `json:"delivery_date,omitempty"`
	DeliveryType  string        `json:"delivery_type"`
	Customer      string        `json:"customer"`
	Cashier       string        `json:"cashier,omitempty"`
	Lines         []ReceiptLine `json:"lines"`
	SubTotal      string        `json:"sub_total"`
	Surcharge     string        `json:"surcharge"`
	SalesTax      string        `json:"sales_tax"`
	Hangers       string        `json:"hangers"`
	Total         string        `json:"total"`
	Units         int           `json:"units"`
	Notes         string        `json:"notes,omitempty"`
	Issues        []string      `json:"issues,omitempty"`
}
