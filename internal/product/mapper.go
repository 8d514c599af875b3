package product

func ToProduct(req ProductRequest) Product {
	return Product{Name: req.Name}
}

// ToUpdatedProduct keeps the identity of existing and takes the name from req.
func ToUpdatedProduct(existing Product, req UpdateProductRequest) Product {
	return Product{ID: existing.ID, Name: req.Name}
}

func ToProductResponse(p Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name}
}

func ToProductResponses(ps []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToProductResponse(p))
	}
	return out
}
