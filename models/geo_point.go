package models

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const SRID = 4326

const (
	ewkbPoint    = 1
	ewkbSRIDFlag = 0x20000000
)

// GeoPoint is a WGS84 point written through ST_MakePoint and read back from
// PostGIS hex EWKB.
type GeoPoint struct {
	Lat float64
	Lon float64
}

func (p GeoPoint) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return clause.Expr{
		SQL:  "ST_SetSRID(ST_MakePoint(?, ?), ?)",
		Vars: []interface{}{p.Lon, p.Lat, SRID},
	}
}

func (p *GeoPoint) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*p = GeoPoint{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("geopoint: unsupported scan type %T", value)
	}

	data := raw
	if decoded, err := hex.DecodeString(string(raw)); err == nil {
		data = decoded
	}
	return p.decodeEWKB(data)
}

func (p *GeoPoint) decodeEWKB(data []byte) error {
	if len(data) < 5 {
		return errors.New("geopoint: short ewkb")
	}

	var order binary.ByteOrder = binary.LittleEndian
	if data[0] == 0 {
		order = binary.BigEndian
	}
	geomType := order.Uint32(data[1:5])
	offset := 5
	if geomType&ewkbSRIDFlag != 0 {
		offset += 4
	}
	if geomType&0xff != ewkbPoint {
		return fmt.Errorf("geopoint: unexpected geometry type %d", geomType&0xff)
	}
	if len(data) < offset+16 {
		return errors.New("geopoint: short ewkb point")
	}

	p.Lon = math.Float64frombits(order.Uint64(data[offset : offset+8]))
	p.Lat = math.Float64frombits(order.Uint64(data[offset+8 : offset+16]))
	return nil
}
