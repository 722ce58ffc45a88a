package model

// Package is a prepaid bundle of sessions for one client.
type Package struct {
	ID            int     `json:"id"`
	ClientID      int     `json:"clienteId"`
	Name          string  `json:"nomePacote"`
	TotalSessions int     `json:"totalSessoes"`
	TotalPrice    float64 `json:"valorTotal"`
	PurchasedOn   string  `json:"dataCompra"`
}

type PackageRequest struct {
	ClientID      int     `json:"client_id"`
	Name          string  `json:"name" binding:"required"`
	TotalSessions int     `json:"total_sessions"`
	TotalPrice    float64 `json:"total_price"`
}

type PackageStatus string

const (
	PackageStatusActive    PackageStatus = "Active"
	PackageStatusCompleted PackageStatus = "Completed"
)
