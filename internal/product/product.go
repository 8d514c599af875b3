package product

// Product is the stored record. ID is zero until the store assigns one.
type Product struct {
	ID   int64
	Name string
}

type ProductRequest struct {
	Name string `json:"name"`
}

type UpdateProductRequest struct {
	Name string `json:"name"`
}

type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
