package memory

import (
	"context"
	"fmt"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// Seed loads a small demo catalog through the capability interface. It is
// written against storage.Storage rather than the concrete store so the same
// data can prime any backend during development.
func Seed(ctx context.Context, s storage.Storage) error {
	categories := []*entity.Category{
		{Name: "Vegetables", Description: "Seasonal vegetables straight from the field"},
		{Name: "Fruit", Description: "Orchard and berry-patch fruit"},
		{Name: "Dairy & Eggs", Description: "Small-batch dairy and pastured eggs"},
		{Name: "Baked Goods", Description: "Breads and pastries baked this morning"},
	}
	catIDs := make(map[string]int64)
	for _, c := range categories {
		created, err := s.CreateCategory(ctx, c)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		catIDs[c.Name] = created.ID
	}

	vendorUsers := []*entity.User{
		{Username: "greenacres", Email: "owner@greenacres.example", Password: "seed-disabled", IsVendor: true, IsVerified: true, FirstName: "Rosa", LastName: "Delgado", City: "Stoughton", State: "WI"},
		{Username: "hilltopdairy", Email: "milk@hilltop.example", Password: "seed-disabled", IsVendor: true, IsVerified: true, FirstName: "Anders", LastName: "Lund", City: "Mount Horeb", State: "WI"},
	}
	var vendors []*entity.Vendor
	for i, u := range vendorUsers {
		created, err := s.CreateUser(ctx, u)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		v, err := s.CreateVendor(ctx, &entity.Vendor{
			UserID:       created.ID,
			BusinessName: []string{"Green Acres Farm", "Hilltop Dairy"}[i],
			Description:  []string{"Certified organic vegetables on 40 acres", "Grass-fed dairy herd, bottling on site"}[i],
			Location:     created.City + ", " + created.State,
			Tags:         [][]string{{"organic", "vegetables"}, {"dairy", "grass-fed"}}[i],
			Rating:       4.8,
		})
		if err != nil {
			return fmt.Errorf("seed vendor for %q: %w", u.Username, err)
		}
		vendors = append(vendors, v)
	}

	products := []*entity.Product{
		{Name: "Kale", Description: "Curly green kale, bunched", Price: 3.99, Stock: 50, CategoryID: catIDs["Vegetables"], VendorID: vendors[0].ID, IsOrganic: true, IsLocal: true},
		{Name: "Heirloom Tomatoes", Description: "Mixed heirloom varieties by the pound", Price: 5.49, Stock: 30, CategoryID: catIDs["Vegetables"], VendorID: vendors[0].ID, IsOrganic: true, IsLocal: true},
		{Name: "Honeycrisp Apples", Description: "Crisp and sweet, half-peck bag", Price: 7.25, Stock: 40, CategoryID: catIDs["Fruit"], VendorID: vendors[0].ID, IsLocal: true},
		{Name: "Whole Milk", Description: "Non-homogenized, returnable glass bottle", Price: 4.50, Stock: 24, CategoryID: catIDs["Dairy & Eggs"], VendorID: vendors[1].ID, IsLocal: true},
		{Name: "Pastured Eggs", Description: "One dozen, mixed brown and blue", Price: 6.00, Stock: 36, CategoryID: catIDs["Dairy & Eggs"], VendorID: vendors[1].ID, IsOrganic: true, IsLocal: true},
	}
	for _, p := range products {
		if _, err := s.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	return nil
}
