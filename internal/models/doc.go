// Package models defines the core domain models for the storefront.
//
// # Models
//
//   - Product, Category: catalog records owned by the storage layer
//   - Cart, CartItem: a user's pending purchases (lazily created)
//   - Order, OrderItem: immutable checkout snapshots
//   - Event: append-only behavioral log entries
//   - FeatureFlag: named boolean toggles for experiments
//   - User: registered accounts (shoppers and admins)
//
// # Design Principles
//
//  1. Avoid circular references: relationships use ID strings, not pointers.
//  2. Orders snapshot prices; carts project live prices. The two are
//     deliberately different types so the distinction is visible at the
//     type level.
//  3. Timestamps are Unix seconds (int64) for stable SQLite storage.
package models
