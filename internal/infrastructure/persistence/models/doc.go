// Package models contains the GORM persistence models of the inventory
// ledger. Domain types stay free of ORM tags; repositories convert with
// ToDomain / FromDomain.
//
// Tables:
//   - inventory_locations: LocationModel
//   - inventory_items: InventoryItemModel, unique per (location, ref kind, ref id)
//   - stock_movements: StockMovementModel, append-only
package models
