// Package models defines the data model shared by the NicheScope stores,
// the analysis client and the report exporter. Field names in JSON follow
// the persisted layout, so existing stored collections decode unchanged.
package models
