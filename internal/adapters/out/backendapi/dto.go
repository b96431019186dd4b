// Package backendapi implements the outbound ports of the application layer
// against the remote store's JSON API. This package handles the conversion
// between the store's wire representations and domain entities.
package backendapi

import (
	"encoding/json"
	"errors"
	"time"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
)

// objectID decodes a reference field that arrives either as a plain id
// string or as a populated object carrying "_id".
type objectID string

func (o *objectID) UnmarshalJSON(raw []byte) error {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		*o = objectID(plain)
		return nil
	}

	var populated struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &populated); err != nil {
		return err
	}
	*o = objectID(populated.ID)
	return nil
}

// userDTO is the wire shape of a user as the store sends it.
type userDTO struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

func (dto userDTO) toDomain() (identity.UserRef, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return identity.UserRef{}, err
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return identity.UserRef{}, err
	}
	return identity.NewUserRef(id, role, dto.Name, dto.Address)
}

// productDTO is the populated product reference inside a cart item. ShopID
// is present on cart reads and absent inside order snapshots.
type productDTO struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	ShopID objectID `json:"shopId"`
}

// orderProductDTO is one snapshot line in a checkout request body.
type orderProductDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// cartItemDTO is one cart line on the wire. ProductID is nil when the
// product was deleted after being added to the cart; such lines carry no
// sellable product anymore and are dropped during mapping.
type cartItemDTO struct {
	ProductID *productDTO `json:"productId"`
	Quantity  int         `json:"quantity"`
}

// cartDTO is the wire shape of the server cart.
type cartDTO struct {
	Items []cartItemDTO `json:"items"`
}

func (dto cartDTO) toDomain() (cart.Lines, error) {
	lines := make(cart.Lines, 0, len(dto.Items))
	for _, item := range dto.Items {
		if item.ProductID == nil {
			continue
		}

		productID, err := kernel.NewID(item.ProductID.ID)
		if err != nil {
			return nil, err
		}
		price, err := kernel.MoneyFromFloat(item.ProductID.Price)
		if err != nil {
			return nil, err
		}
		var shopID kernel.ID
		if item.ProductID.ShopID != "" {
			shopID, err = kernel.NewID(string(item.ProductID.ShopID))
			if err != nil {
				return nil, err
			}
		}
		line, err := cart.NewLine(productID, shopID, item.ProductID.Name, price, item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// geoDTO is a latitude/longitude pair on the wire.
type geoDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// addressDTO is the delivery address on the wire.
type addressDTO struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// orderDTO is the wire shape of an order as the store sends it. Customer
// and DeliveryAgent arrive populated; Shop may be either a plain id or a
// populated object.
type orderDTO struct {
	ID              string      `json:"_id"`
	Customer        userDTO     `json:"customer"`
	Shop            objectID    `json:"shop"`
	Items           []cartItemDTO `json:"items"`
	DeliveryAddress addressDTO  `json:"deliveryAddress"`
	Status          string      `json:"status"`
	DeliveryAgent   *userDTO    `json:"deliveryAgent"`
	AgentLocation   *geoDTO     `json:"agentLocation"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func (dto orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	owner, err := dto.Customer.toDomain()
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.NewID(string(dto.Shop))
	if err != nil {
		return nil, err
	}
	lines, err := cartDTO{Items: dto.Items}.toDomain()
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		id,
		owner,
		shopID,
		lines,
		order.Address{Street: dto.DeliveryAddress.Street, City: dto.DeliveryAddress.City},
		status,
		dto.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dto.DeliveryAgent != nil {
		agent, err := dto.DeliveryAgent.toDomain()
		if err != nil {
			return nil, err
		}
		var location *kernel.GeoPoint
		if dto.AgentLocation != nil {
			point, err := kernel.NewGeoPoint(dto.AgentLocation.Lat, dto.AgentLocation.Lng)
			if err != nil {
				return nil, err
			}
			location = &point
		}
		if err := o.SetAgent(agent, location); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func ordersToDomain(dtos []orderDTO) ([]*order.Order, error) {
	result := make([]*order.Order, 0, len(dtos))
	var errsJoined error
	for _, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			errsJoined = errors.Join(errsJoined, err)
			continue
		}
		result = append(result, o)
	}
	if errsJoined != nil {
		return nil, errsJoined
	}
	return result, nil
}
