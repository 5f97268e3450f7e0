package meli

// SearchItem represents a single result from the MercadoLibre search API.
type SearchItem struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Price             float64     `json:"price"`
	AvailableQuantity int         `json:"available_quantity"`
	SoldQuantity      int         `json:"sold_quantity"`
	Condition         string      `json:"condition"`
	Seller            *ItemSeller `json:"seller,omitempty"`
	Permalink         string      `json:"permalink"`
}

// ItemSeller holds the seller reference embedded in a search result.
type ItemSeller struct {
	ID int64 `json:"id"`
}

// searchResponse is the top-level search API response.
type searchResponse struct {
	Results []SearchItem `json:"results"`
}

// visitsResponse is the item visits time-window response.
type visitsResponse struct {
	TotalVisits int64 `json:"total_visits"`
}

// reviewsResponse is the item reviews response. Reviews are only counted,
// never inspected individually.
type reviewsResponse struct {
	RatingAverage *float64         `json:"rating_average"`
	Reviews       []map[string]any `json:"reviews"`
	RatingLevels  ratingLevels     `json:"rating_levels"`
}

type ratingLevels struct {
	OneStar   int `json:"one_star"`
	TwoStar   int `json:"two_star"`
	ThreeStar int `json:"three_star"`
	FourStar  int `json:"four_star"`
	FiveStar  int `json:"five_star"`
}

// userResponse is the users API response, reduced to the reputation
// fields this service consumes.
type userResponse struct {
	SellerReputation struct {
		LevelID           string `json:"level_id"`
		PowerSellerStatus string `json:"power_seller_status"`
		Transactions      struct {
			Total     *int64 `json:"total"`
			Completed *int64 `json:"completed"`
			Canceled  *int64 `json:"canceled"`
		} `json:"transactions"`
	} `json:"seller_reputation"`
}
