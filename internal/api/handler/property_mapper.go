package handler

import (
	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createPropertyRequest) ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Location: ports.LocationInput{
			Address: req.Location.Address,
			City:    req.Location.City,
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
		},
		Price:       req.Price,
		Size:        req.Size,
		Bedrooms:    req.Bedrooms,
		Parking:     req.Parking,
		Balcony:     req.Balcony,
		Amenities:   req.Amenities,
		Images:      req.Images,
		IsPublished: req.IsPublished,
	}
}

func toUpdateInput(req updatePropertyRequest) ports.UpdatePropertyInput {
	return ports.UpdatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Price:       req.Price,
		Size:        req.Size,
		Bedrooms:    req.Bedrooms,
		Parking:     req.Parking,
		Balcony:     req.Balcony,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
}

// --- Domain → HTTP response ---

func toPropertyResponse(p *domain.Property) propertyResponse {
	resp := propertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Location: locationResponse{
			Address: p.Location.Address,
			City:    p.Location.City,
		},
		Price:           p.Price,
		Size:            p.Size,
		Bedrooms:        p.Bedrooms,
		Parking:         p.Parking,
		Balcony:         p.Balcony,
		Amenities:       p.Amenities,
		Images:          p.Images,
		IsPublished:     p.IsPublished,
		OccupancyStatus: string(p.OccupancyStatus),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	// GeoJSON stores [lng, lat]; the API exposes named fields.
	if g := p.Location.Geo; g != nil && len(g.Coordinates) == 2 {
		lng, lat := g.Coordinates[0], g.Coordinates[1]
		resp.Location.Lng = &lng
		resp.Location.Lat = &lat
	}
	return resp
}

func toListResponse(page *ports.PropertyPage) listPropertiesResponse {
	items := make([]propertyResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = toPropertyResponse(p)
	}
	return listPropertiesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
