// Package models contains the GORM persistence models and their mappers.
//
// Domain entities stay free of persistence tags; every aggregate gets a
// model struct here with a ToDomain/FromDomain pair. Repositories load
// models, convert at the boundary, and hand pure domain objects upward.
package models
