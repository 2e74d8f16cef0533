// Package seed holds the records written by the first schema migration.
package seed

import (
	"fmt"

	"github.com/nugabest/estatedb/internal/models"
)

const (
	AdminID    = "usr_admin_001"
	AdminEmail = "admin@nugabest.com"
	AdminName  = "Nuga Executive"

	Currency = "₦"
)

// Settings is the initial platform configuration record.
func Settings() models.SystemSettings {
	return models.SystemSettings{
		PlatformName:    "Nuga Best Properties",
		LogoURL:         "",
		AIEngineEnabled: true,
		MaintenanceMode: false,
		GlobalCurrency:  Currency,
		CommissionRate:  5,
	}
}

var interiorFeatures = []string{
	"Smart Home Automation", "Walk-in Closets", "Chef's Kitchen", "Marble Flooring", "Home Cinema",
	"Elevator", "In-built Speakers", "Jacuzzi", "Gas Cooker", "Heat Extractor", "Central AC",
	"Tiled Floors", "Wardrobes", "POP Ceiling",
}

var saleTitles = []string{
	"Luxury 5 Bedroom Penthouse with BQ", "Contemporary 4 Bedroom Terrace House", "Exquisite 6 Bedroom Detached Mansion",
	"Prime 600sqm Land in Secured Estate", "Modern 5 Bedroom Duplex with Cinema", "Premium Industrial Warehouse Space",
	"Fully Serviced 3 Bedroom Apartment", "Sophisticated 4 Bedroom Semi-Detached", "High-Yield Commercial Plaza",
	"Elegant 5 Bedroom Smart Home", "Architectural Masterpiece Duplex", "Grand 7 Bedroom Palace",
	"Eco-Friendly 4 Bedroom Smart House", "Urban 3 Bedroom Condominium", "Spacious Corner-Piece Land",
	"Luxury Estate Mansion", "Mini-Estate Development Land", "Corporate Office Complex",
	"Executive Waterfront Villa", "The Royal Penthouse",
}

var rentTitles = []string{
	"Standard 3 Bedroom Apartment", "Luxury 2 Bedroom Serviced Flat", "Spacious 4 Bedroom Duplex",
	"Self Contain Studio Apartment", "Executive Office Space", "Cozy 3 Bedroom Bungalow",
	"Modern 1 Bedroom Mini Flat", "Open Plan Showroom", "Premium 4 Bedroom Terrace",
	"Furnished 3 Bedroom Apartment", "Quiet 2 Bedroom Flat", "Retail Space in Shopping Mall",
	"Elegant Duplex for Corporate Lease", "Renovated 3 Bedroom Home", "Penthouse for Rent",
	"Serviced Mini-Flat", "Semi-Detached 4 Bedroom House", "Commercial Warehouse",
	"Studio Flat for Professionals", "Upper Class 3 Bedroom Flat",
}

var shortLetTitles = []string{
	"Luxury 3 Bedroom Waterfront Penthouse", "Cozy 1 Bedroom Studio for Travelers", "Exquisite 4 Bedroom Villa with Pool",
	"Shortlet: Premium 2 Bedroom Flat", "Luxury Shortstay Studio", "Executive 3 Bedroom Serviced Apt",
	"Minimalist 2 Bedroom Shortlet", "Celebrity Standard 5 Bedroom Villa", "Home Away from Home 3 Bedroom",
	"Modern 1 Bedroom Studio Oniru", "Staycation 2 Bedroom Haven", "Business Suite Oniru",
	"Ocean View 3 Bedroom Shortlet", "The Ikoyi Sanctuary", "Signature Shortstay Duplex",
	"Vacation 4 Bedroom Villa", "Designer 2 Bedroom Loft", "The Guest House Shortlet",
	"Zen 1 Bedroom Apartment", "Vibrant Victoria Island Suite",
}

var locations = []string{
	"Lekki Phase 1, Lagos", "Asokoro, Abuja", "Old GRA, Port Harcourt", "Ibeju Lekki, Lagos", "Guzape, Abuja",
	"Maitama, Abuja", "Victoria Island, Lagos", "Magodo Phase 2, Lagos", "Enugu GRA", "Trans Amadi, PH",
	"Banana Island, Lagos", "Eko Atlantic, Lagos", "Wuse 2, Abuja", "Ikoyi, Lagos", "Oniru, Lagos",
	"GRA, Benin City", "Gwarinpa, Abuja", "Surulere, Lagos", "Ikeja GRA, Lagos", "VGC, Lagos",
}

var saleImages = []string{
	"1600596542815-ffad4c1539a9", "1600047509807-ba8f99d2cdde", "1600585154526-990dcea4db0d", "1512917774080-9991f1c4c750",
	"1600566752355-3979ff69a3bc", "1586528116311-ad8dd3c8310d", "1527359443443-84a48abc7df8", "1564013799919-ab600027ffc6",
	"1486406146926-c627a92ad1ab", "1600585154340-be6161a56a0c", "1580587771525-78b9dba3b914", "1568605114967-8130f3a36994",
	"1513584684032-297924408895", "1448630360428-288d665b704e", "1416339442236-8ceb164046f8", "1523217582562-09d0def993a6",
	"1502672260266-1c1ef2d93688", "1582268611958-ebfd161ef9cf", "1494526585095-c41746248156", "1472224317457-5f96bc11b138",
}

var rentImages = []string{
	"1522708323590-d24dbb6b0267", "1493809842364-78817add7ffb", "1600585154340-be6161a56a0c", "1536376074432-bf121781188c",
	"1497366216548-37526070297c", "1580587771525-78b9dba3b914", "1502672260266-1c1ef2d93688", "1486406146926-c627a92ad1ab",
	"1564013799919-ab600027ffc6", "1527359443443-84a48abc7df8", "1554995207-c18c203602cb", "1494438639946-1ebd1d20bf85",
	"1484154218962-a197022b5858", "1512918766671-ad6507962077", "1515263487990-61b0082b6b02", "1560448204-61dc36dc98c8",
	"1464890100898-a385f744067f", "1582268611958-ebfd161ef9cf", "1481310198475-5945a1f7d19d", "1591474200742-8e512e6f98f8",
}

var shortLetImages = []string{
	"1502672260266-1c1ef2d93688", "1536376074432-bf121781188c", "1613977257363-707ba9348227", "1527359443443-84a48abc7df8",
	"1493809842364-78817add7ffb", "1512918766671-ad6507962077", "1522708323590-d24dbb6b0267", "1564013799919-ab600027ffc6",
	"1600585154340-be6161a56a0c", "1600607687920-4e2a09cf159d", "1554995207-c18c203602cb", "1560185127-6ed189bf02f4",
	"1505691938895-1758d7eaa511", "1499951360447-b19be8fe80f5", "1484154218962-a197022b5858", "1516455590571-18256e5bb9ff",
	"1580587771525-78b9dba3b914", "1472224317457-5f96bc11b138", "1600210492486-724fe5c67fb0", "1564013799919-ab600027ffc6",
}

func unsplash(photoID string) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%s?auto=format&fit=crop&w=800&q=80", photoID)
}

func intp(v int) *int { return &v }

// Properties returns a fresh copy of the full seed catalog: five curated
// listings followed by twenty generated listings of each type.
func Properties() []models.Property {
	out := make([]models.Property, 0, 5+len(saleTitles)+len(rentTitles)+len(shortLetTitles))
	out = append(out, curated()...)

	for i, title := range saleTitles {
		p := models.Property{
			ID:               fmt.Sprintf("sale-gen-%d", i),
			Title:            title,
			Type:             models.ForSale,
			Category:         saleCategory(i),
			Price:            float64((i+1)*35000000 + 20000000),
			Currency:         Currency,
			Location:         locations[i%len(locations)],
			ImageURL:         unsplash(saleImages[i%len(saleImages)]),
			Featured:         i%4 == 0,
			PostedDate:       fmt.Sprintf("%d day ago", i+1),
			SQM:              intp((i+1)*50 + 200),
			Description:      "Luxury investment opportunity in a prime location. Verified documents and ready for immediate transfer of ownership.",
			InteriorFeatures: window(interiorFeatures, i%5, 5),
			Amenities:        []string{"24/7 Power", "Gated Access", "Treated Water"},
		}
		if i%5 != 0 {
			p.Beds = intp(3 + i%4)
			p.Baths = intp(3 + i%4)
			p.Toilets = intp(4 + i%4)
		}
		out = append(out, p)
	}

	for i, title := range rentTitles {
		p := models.Property{
			ID:               fmt.Sprintf("rent-gen-%d", i),
			Title:            title,
			Type:             models.ToRent,
			Category:         rentCategory(i),
			Price:            float64((i+1)*800000 + 500000),
			Currency:         Currency,
			Location:         locations[(i+5)%len(locations)],
			ImageURL:         unsplash(rentImages[i%len(rentImages)]),
			Featured:         i%6 == 0,
			PostedDate:       fmt.Sprintf("%d hours ago", i+2),
			SQM:              intp((i+1)*30 + 100),
			Description:      "Strategically located with excellent road access. Ideal for families or professionals looking for a secure and comfortable living space.",
			InteriorFeatures: window(interiorFeatures, i%4, 4),
			Amenities:        []string{"Uniformed Security", "Borehole", "Spacious Compound"},
		}
		if i%10 != 0 {
			p.Beds = intp(1 + i%4)
			p.Baths = intp(1 + i%4)
			p.Toilets = intp(2 + i%4)
		}
		out = append(out, p)
	}

	for i, title := range shortLetTitles {
		category := models.CategoryFlat
		if i%5 == 0 {
			category = models.CategoryHouse
		}
		out = append(out, models.Property{
			ID:               fmt.Sprintf("shortlet-gen-%d", i),
			Title:            title,
			Type:             models.ShortLet,
			Category:         category,
			Price:            float64((i+1)*15000 + 40000),
			Currency:         Currency,
			Location:         locations[(i+10)%len(locations)],
			Beds:             intp(1 + i%4),
			Baths:            intp(1 + i%4),
			Toilets:          intp(2 + i%4),
			ImageURL:         unsplash(shortLetImages[i%len(shortLetImages)]),
			Featured:         i%3 == 0,
			PostedDate:       "Just now",
			SQM:              intp((i+1)*20 + 50),
			Description:      "Exquisite short-stay apartment with five-star amenities. Fully serviced with high-speed internet, smart TVs, and premium concierge services.",
			InteriorFeatures: []string{"WiFi", "Smart TV", "Chef Service", "Netflix", "Home Office"},
			Amenities:        []string{"24/7 Power", "Swimming Pool", "Daily Cleaning", "Underground Parking"},
		})
	}

	return out
}

func saleCategory(i int) models.Category {
	switch {
	case i%5 == 0:
		return models.CategoryLand
	case i%8 == 0:
		return models.CategoryCommercial
	case i%3 == 0:
		return models.CategoryFlat
	default:
		return models.CategoryHouse
	}
}

func rentCategory(i int) models.Category {
	switch {
	case i%10 == 0:
		return models.CategoryCommercial
	case i%4 == 0:
		return models.CategoryHouse
	default:
		return models.CategoryFlat
	}
}

// window copies up to n items starting at from, clamped to the slice end.
func window(items []string, from, n int) []string {
	to := from + n
	if to > len(items) {
		to = len(items)
	}
	out := make([]string, to-from)
	copy(out, items[from:to])
	return out
}
