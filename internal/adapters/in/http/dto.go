package http

import "time"

// Wire DTOs for the public API. Field names follow the external
// contract, snake_case throughout.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createShipmentRequest struct {
	ShipmentID     string    `json:"shipment_id,omitempty"`
	OrderID        string    `json:"order_id"`
	ShipmentNo     int       `json:"shipment_no"`
	SupplierWallet string    `json:"supplier_wallet"`
	BuyerWallet    string    `json:"buyer_wallet"`
	PickupLat      *float64  `json:"pickup_lat,omitempty"`
	PickupLon      *float64  `json:"pickup_lon,omitempty"`
	DropLat        *float64  `json:"drop_lat,omitempty"`
	DropLon        *float64  `json:"drop_lon,omitempty"`
	DueBy          time.Time `json:"due_by"`
	Metadata       string    `json:"metadata,omitempty"`
}

type createShipmentResponse struct {
	ShipmentID string `json:"shipment_id"`
}

type milestoneRequest struct {
	ShipmentNo        int      `json:"shipment_no"`
	OrderID           string   `json:"order_id"`
	Milestone         string   `json:"milestone"`
	CourierWallet     string   `json:"courier_wallet"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	ClaimedTS         *int64   `json:"claimed_ts,omitempty"`
	CourierSignature  string   `json:"courier_signature,omitempty"`
	SupplierSignature string   `json:"supplier_signature,omitempty"`
	BuyerSignature    string   `json:"buyer_signature,omitempty"`
	LocationHash      string   `json:"location_hash,omitempty"`
	ShipmentHash      string   `json:"shipment_hash,omitempty"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
	ChainOrderID      string   `json:"chain_order_id,omitempty"`
	RadiusM           float64  `json:"radius_m,omitempty"`
}

type milestoneResponse struct {
	Status         string   `json:"status"`
	EscrowTx       string   `json:"escrow_tx,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	Radius         *float64 `json:"radius,omitempty"`
	ShipmentStatus string   `json:"shipment_status,omitempty"`
	OrderStatus    string   `json:"order_status,omitempty"`
}

type shipmentResponse struct {
	ShipmentID    string    `json:"shipment_id"`
	OrderID       string    `json:"order_id"`
	ShipmentNo    int       `json:"shipment_no"`
	Status        string    `json:"status"`
	CourierWallet string    `json:"courier_wallet,omitempty"`
	DueBy         time.Time `json:"due_by"`
}

type inventoryStatusResponse struct {
	Owner       string `json:"owner"`
	SkuID       string `json:"sku_id"`
	Name        string `json:"name,omitempty"`
	Unit        string `json:"unit,omitempty"`
	OnHand      int    `json:"on_hand"`
	Threshold   int    `json:"threshold"`
	Recommended string `json:"recommended"`
	Reason      string `json:"reason"`
}
