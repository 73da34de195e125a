package catalog

import "foodorders/internal/core/domain/model/kernel"

// DemoMenu returns the menu the single demo business serves.
func DemoMenu() []*Product {
	entries := []struct {
		id, name, description string
		price                 int64
	}{
		{"product-01", "Hamburguesa Clásica", "Hamburguesa con carne, lechuga, tomate y queso", 20},
		{"product-02", "Papas Fritas", "Papas fritas crujientes", 8},
		{"product-03", "Refresco", "Refresco de cola", 5},
		{"product-04", "Ensalada", "Ensalada fresca con vegetales", 12},
	}

	menu := make([]*Product, 0, len(entries))
	for _, e := range entries {
		p, err := NewProduct(e.id, e.name, e.description, kernel.MoneyFromInt(e.price))
		if err != nil {
			panic(err)
		}
		menu = append(menu, p)
	}
	return menu
}
