package seed

import "github.com/nugabest/estatedb/internal/models"

func curated() []models.Property {
	return []models.Property{
		{
			ID:               "1",
			Title:            "Modern 5 Bedroom Fully Detached Mansion",
			Type:             models.ForSale,
			Category:         models.CategoryHouse,
			Price:            280000000,
			Currency:         Currency,
			Location:         "Banana Island, Lagos",
			Beds:             intp(5),
			Baths:            intp(5),
			Toilets:          intp(6),
			ImageURL:         unsplash("1613977257363-707ba9348227"),
			Featured:         true,
			PostedDate:       "1 hour ago",
			SQM:              intp(1200),
			Description:      "This architectural masterpiece offers unparalleled luxury in the heart of Banana Island. Features floor-to-ceiling windows, a private infinity pool, and high-end finishes throughout.",
			InteriorFeatures: []string{"Smart Home Automation", "Walk-in Closets", "Chef's Kitchen", "Marble Flooring", "Home Cinema", "Elevator"},
			Amenities:        []string{"24/7 Power", "Gym", "Swimming Pool", "Fenced Backyard", "CCTV", "Underground Parking"},
		},
		{
			ID:               "2",
			Title:            "Luxury 3 Bedroom Waterfront Apartment",
			Type:             models.ToRent,
			Category:         models.CategoryFlat,
			Price:            8500000,
			Currency:         Currency,
			Location:         "Eko Atlantic, Victoria Island",
			Beds:             intp(3),
			Baths:            intp(3),
			Toilets:          intp(4),
			ImageURL:         unsplash("1512917774080-9991f1c4c750"),
			Featured:         true,
			PostedDate:       "4 hours ago",
			SQM:              intp(350),
			Description:      "Experience living in the city of the future. This apartment offers stunning ocean views and state-of-the-art infrastructure.",
			InteriorFeatures: []string{"Central Air Conditioning", "Imported Kitchen Fittings", "High Ceilings", "Panoramic Windows"},
			Amenities:        []string{"Underground Parking", "High-Speed Elevators", "Intercom System", "Concierge Service"},
		},
		{
			ID:          "3",
			Title:       "Prime Industrial Land (5000sqm)",
			Type:        models.ForSale,
			Category:    models.CategoryLand,
			Price:       450000000,
			Currency:    Currency,
			Location:    "Agbara Industrial Estate, Ogun",
			ImageURL:    unsplash("1500382017468-9049fed747ef"),
			Featured:    false,
			PostedDate:  "12 hours ago",
			SQM:         intp(5000),
			Description: "Strategically located plot of industrial land, perfect for large-scale manufacturing or warehousing.",
			Amenities:   []string{"Perimeter Fencing", "Electricity Connection Ready", "Approved Survey Plan", "Industrial Zone"},
		},
		{
			ID:               "4",
			Title:            "Executive 4 Bedroom Semi-Detached Duplex",
			Type:             models.ForSale,
			Category:         models.CategoryHouse,
			Price:            120000000,
			Currency:         Currency,
			Location:         "Maitama, Abuja",
			Beds:             intp(4),
			Baths:            intp(4),
			Toilets:          intp(5),
			ImageURL:         unsplash("1600585154340-be6161a56a0c"),
			Featured:         true,
			PostedDate:       "1 day ago",
			SQM:              intp(650),
			Description:      "A beautifully crafted semi-detached duplex in the upscale neighborhood of Maitama.",
			InteriorFeatures: []string{"POP Ceiling", "Tiled Floors", "Wardrobes", "Inverter System", "Pantry"},
			Amenities:        []string{"Gated Community", "Armed Guard Presence", "Constant Water Supply", "Playground"},
		},
		{
			ID:               "5",
			Title:            "Contemporary 2 Bedroom Serviced Flat",
			Type:             models.ToRent,
			Category:         models.CategoryFlat,
			Price:            4000000,
			Currency:         Currency,
			Location:         "Old Ikoyi, Lagos",
			Beds:             intp(2),
			Baths:            intp(2),
			Toilets:          intp(3),
			ImageURL:         unsplash("1493809842364-78817add7ffb"),
			Featured:         false,
			PostedDate:       "2 days ago",
			SQM:              intp(180),
			Description:      "Serviced luxury flat located in the serene environment of Old Ikoyi.",
			InteriorFeatures: []string{"Fully Fitted Kitchen", "Bathtub", "Balcony", "Smoke Detectors"},
			Amenities:        []string{"Standby Generator", "Cleaning Services", "Uniformed Security", "Swimming Pool"},
		},
	}
}
