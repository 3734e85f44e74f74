package report

import (
	"time"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// SampleInput returns the fixed demo dataset substituted when filtering
// produced nothing to report on. The rows are deliberately unfiltered so
// the rendered output always has content in every section.
func SampleInput() Input {
	props := []model.Property{
		{ID: "sample-loft", Name: "Downtown Loft", Category: model.PropertyApartment, Bedrooms: 2, Bathrooms: 1, MaxGuests: 4},
		{ID: "sample-cottage", Name: "Seaside Cottage", Category: model.PropertyHouse, Bedrooms: 3, Bathrooms: 2, MaxGuests: 6},
		{ID: "sample-cabin", Name: "Mountain Cabin", Category: model.PropertyHouse, Bedrooms: 4, Bathrooms: 2.5, MaxGuests: 8},
	}

	txns := []model.Transaction{
		sampleTxn("sample-loft", model.TransactionIncome, "Booking Revenue", "Airbnb booking - 5 nights", 1200, 2024, time.January, 15),
		sampleTxn("sample-loft", model.TransactionExpense, "Cleaning", "Turnover cleaning", 80, 2024, time.January, 16),
		sampleTxn("sample-loft", model.TransactionIncome, "Booking Revenue", "Airbnb booking - 3 nights", 780, 2024, time.February, 8),
		sampleTxn("sample-loft", model.TransactionExpense, "Utilities", "Electric and water", 140, 2024, time.February, 20),
		sampleTxn("sample-cottage", model.TransactionIncome, "Booking Revenue", "Vrbo booking - 7 nights", 2100, 2024, time.January, 10),
		sampleTxn("sample-cottage", model.TransactionExpense, "Maintenance", "Deck repair", 350, 2024, time.February, 3),
		sampleTxn("sample-cottage", model.TransactionIncome, "Booking Revenue", "Direct booking - 4 nights", 1150, 2024, time.March, 12),
		sampleTxn("sample-cabin", model.TransactionIncome, "Booking Revenue", "Airbnb booking - 6 nights", 1850, 2024, time.March, 2),
		sampleTxn("sample-cabin", model.TransactionExpense, "Supplies", "Linens and toiletries", 120, 2024, time.March, 5),
		sampleTxn("sample-cabin", model.TransactionExpense, "Property Management", "March management fee", 185, 2024, time.March, 31),
	}

	bookings := []model.Booking{
		{
			ID:          "sample-booking-1",
			PropertyID:  "sample-loft",
			GuestName:   "Sample Guest",
			CheckIn:     time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			CheckOut:    time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			Guests:      2,
			TotalAmount: 1200,
			Status:      model.BookingCompleted,
		},
	}

	return Input{Transactions: txns, Properties: props, Bookings: bookings}
}

func sampleTxn(propertyID string, typ model.TransactionType, category, description string, amount float64, year int, month time.Month, day int) model.Transaction {
	return model.Transaction{
		ID:          "sample-" + description,
		PropertyID:  propertyID,
		Type:        typ,
		Category:    category,
		Description: description,
		Amount:      amount,
		Date:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

// TaxCategories returns the curated list of common short-term-rental
// expense categories with illustrative amounts. Only deductible entries
// count toward the deduction total.
func TaxCategories() []model.TaxCategory {
	return []model.TaxCategory{
		{Name: "Mortgage Interest", Amount: 8400, Deductible: true},
		{Name: "Property Tax", Amount: 3600, Deductible: true},
		{Name: "Cleaning & Maintenance", Amount: 2150, Deductible: true},
		{Name: "Utilities", Amount: 1680, Deductible: true},
		{Name: "Insurance", Amount: 1400, Deductible: true},
		{Name: "Property Management Fees", Amount: 1250, Deductible: true},
		{Name: "Supplies", Amount: 640, Deductible: true},
		{Name: "Depreciation", Amount: 5450, Deductible: true},
		{Name: "Principal Payments", Amount: 9600, Deductible: false},
		{Name: "Capital Improvements", Amount: 4200, Deductible: false},
	}
}

// DeductibleTotal sums the deductible entries.
func DeductibleTotal(categories []model.TaxCategory) float64 {
	var total float64
	for _, c := range categories {
		if c.Deductible {
			total += c.Amount
		}
	}
	return total
}
