package store

// Slot keys, one per entity collection.
const (
	KeyOrders    = "aquaflow_orders"
	KeyProducts  = "aquaflow_products"
	KeyDrivers   = "aquaflow_drivers"
	KeyCompanies = "aquaflow_companies"
	KeyUsers     = "aquaflow_users"
)
