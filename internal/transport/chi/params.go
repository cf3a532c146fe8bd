package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// InvalidParamFormatError reports a query or path parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// FormatParams defines parameters shared by every computation endpoint.
type FormatParams struct {
	Format *OutputFormat `form:"format,omitempty" json:"format,omitempty"`
}

// GeoHashParams defines parameters for GetGeoHash.
type GeoHashParams struct {
	Lat       float64 `form:"lat" json:"lat"`
	Lon       float64 `form:"lon" json:"lon"`
	Precision *int    `form:"precision,omitempty" json:"precision,omitempty"`
}

// ZoomPointParams defines parameters for GetTile and GetPixel.
type ZoomPointParams struct {
	Lat    float64       `form:"lat" json:"lat"`
	Lon    float64       `form:"lon" json:"lon"`
	Zoom   int           `form:"zoom" json:"zoom"`
	Format *OutputFormat `form:"format,omitempty" json:"format,omitempty"`
}

// PixelParams defines parameters for GetPixelLatLng.
type PixelParams struct {
	X      float64       `form:"x" json:"x"`
	Y      float64       `form:"y" json:"y"`
	Zoom   int           `form:"zoom" json:"zoom"`
	Format *OutputFormat `form:"format,omitempty" json:"format,omitempty"`
}

// TilePath defines path parameters for GetTileCorner.
type TilePath struct {
	Z, X, Y int
}

func bindQuery(r *http.Request, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func bindFormat(r *http.Request) (OutputFormat, error) {
	var p FormatParams
	if err := bindQuery(r, "format", false, &p.Format); err != nil {
		return "", err
	}
	return resolveFormat(p.Format)
}

func resolveFormat(f *OutputFormat) (OutputFormat, error) {
	if f == nil || *f == "" {
		return OutputFormatJSON, nil
	}
	switch *f {
	case OutputFormatJSON, OutputFormatPacked, OutputFormatGeoJSON:
		return *f, nil
	default:
		return "", &InvalidParamFormatError{ParamName: "format", Err: fmt.Errorf("unknown format %q", *f)}
	}
}

func bindGeoHashParams(r *http.Request) (GeoHashParams, error) {
	var p GeoHashParams
	if err := bindQuery(r, "lat", true, &p.Lat); err != nil {
		return p, err
	}
	if err := bindQuery(r, "lon", true, &p.Lon); err != nil {
		return p, err
	}
	if err := bindQuery(r, "precision", false, &p.Precision); err != nil {
		return p, err
	}
	return p, nil
}

func bindZoomPointParams(r *http.Request) (ZoomPointParams, error) {
	var p ZoomPointParams
	if err := bindQuery(r, "lat", true, &p.Lat); err != nil {
		return p, err
	}
	if err := bindQuery(r, "lon", true, &p.Lon); err != nil {
		return p, err
	}
	if err := bindQuery(r, "zoom", true, &p.Zoom); err != nil {
		return p, err
	}
	if err := bindQuery(r, "format", false, &p.Format); err != nil {
		return p, err
	}
	return p, nil
}

func bindPixelParams(r *http.Request) (PixelParams, error) {
	var p PixelParams
	if err := bindQuery(r, "x", true, &p.X); err != nil {
		return p, err
	}
	if err := bindQuery(r, "y", true, &p.Y); err != nil {
		return p, err
	}
	if err := bindQuery(r, "zoom", true, &p.Zoom); err != nil {
		return p, err
	}
	if err := bindQuery(r, "format", false, &p.Format); err != nil {
		return p, err
	}
	return p, nil
}

func bindTilePath(r *http.Request) (TilePath, error) {
	var p TilePath
	if err := bindPath(r, "z", &p.Z); err != nil {
		return p, err
	}
	if err := bindPath(r, "x", &p.X); err != nil {
		return p, err
	}
	if err := bindPath(r, "y", &p.Y); err != nil {
		return p, err
	}
	return p, nil
}
