package domain

// Transaction is a read-only view unifying incomes and expenses for the
// dashboard and CSV export. It is never persisted.
type Transaction struct {
	ID          uint    `json:"id"`          // ID of the underlying record
	Type        string  `json:"type"`        // "income" or "expense"
	Amount      float64 `json:"amount"`      // Amount of the record
	Category    string  `json:"category"`    // Category of the record
	Description string  `json:"description"` // Description for expenses, source for incomes
	Date        Date    `json:"date"`        // Calendar date of the record
	Note        string  `json:"note"`        // Optional note
}
