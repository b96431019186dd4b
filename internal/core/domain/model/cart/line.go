package cart

import (
	"errors"
	"fmt"

	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/pkg/errs"
	"localshop/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line represents one cart line: a resolved product reference, its unit
// price, and a positive quantity.
//
// Line follows these invariants:
//   - The product reference must be a valid store identifier
//   - Quantity is a positive integer
//   - Can only be created through the NewLine constructor
//
// Line is a value: copies are independent, which is what lets order
// creation snapshot cart contents by value.
type Line struct { //nolint:recvcheck //using for validation
	productID   kernel.ID
	shopID      kernel.ID
	productName string
	unitPrice   kernel.Money
	quantity    int

	guard guard.ConstructorGuard
}

// NewLine creates a cart line with validation.
// The product name may be empty (it is display data, not identity). The
// shop reference may be zero: order snapshots echoed by the store do not
// populate it, only cart reads do.
func NewLine(productID, shopID kernel.ID, productName string, unitPrice kernel.Money, quantity int) (Line, error) {
	line := Line{
		shopID:      shopID,
		productName: productName,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the Line was properly constructed through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the identifier of the referenced product.
func (l Line) ProductID() kernel.ID {
	return l.productID
}

// ShopID returns the identifier of the shop selling the product, or the
// zero ID when the store did not populate it.
func (l Line) ShopID() kernel.ID {
	return l.shopID
}

// ProductName returns the display name of the referenced product.
func (l Line) ProductName() string {
	return l.productName
}

// UnitPrice returns the price of a single unit.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity returns the number of units in the line.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unitPrice x quantity for this line.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
}

func (l *Line) setProductID(productID kernel.ID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not a positive quantity", quantity))
	}
	l.quantity = quantity
	return nil
}
