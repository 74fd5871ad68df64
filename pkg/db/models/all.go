package models

// All lists every storefront table in dependency order.
func All() []any {
	return []any{
		&User{},
		&Wallet{},
		&Transaction{},
		&Category{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&OutboxEvent{},
	}
}
