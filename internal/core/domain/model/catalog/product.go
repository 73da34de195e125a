// Package catalog holds the products a customer can put in the cart.
package catalog

import (
	"errors"
	"strings"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a menu entry. Its price is copied into the order item at
// checkout, so later menu changes never affect placed orders.
type Product struct {
	id          string
	name        string
	description string
	price       kernel.Money
	guard       guard.ConstructorGuard
}

func NewProduct(id, name, description string, price kernel.Money) (*Product, error) {
	p := &Product{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setName(name), p.setPrice(price)); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Price() kernel.Money {
	return p.price
}

func (p *Product) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product price", err)
	}
	p.price = price
	return nil
}
