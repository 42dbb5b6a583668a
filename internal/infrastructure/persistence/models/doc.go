// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain entities so the domain layer stays free of
// ORM tags. Each model converts with ToDomain and FromDomain; repositories
// only ever hand domain entities to their callers.
package models
