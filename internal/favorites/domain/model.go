package domain

import "time"

// Collection holds one favorites document per user, keyed by userId.
const Collection = "favorites"

// Favorites is a set of vehicle ids. The store's set-union keeps it duplicate free.
type Favorites struct {
	UserID     string    `json:"userId" firestore:"userId"`
	VehicleIDs []string  `json:"vehicleIds" firestore:"vehicleIds"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt"`
}
