package chi

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Defines values for ErrorResponseCode.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized      ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodeLengthMismatch    ErrorResponseCode = "length_mismatch"
	ErrorResponseCodeTooManyPoints     ErrorResponseCode = "too_many_points"
	ErrorResponseCodeNotFound          ErrorResponseCode = "not_found"
	ErrorResponseCodeFormatUnsupported ErrorResponseCode = "format_unsupported"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Limit   *int              `json:"limit,omitempty"`
}

// OutputFormat selects the response encoding.
type OutputFormat string

// Defines values for OutputFormat.
const (
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatPacked  OutputFormat = "packed"
	OutputFormatGeoJSON OutputFormat = "geojson"
)

// Point defines model for Point.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ClusterPoint defines model for ClusterPoint. Index defaults to the
// position in the request.
type ClusterPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Index *int    `json:"index,omitempty"`
}

// WeightedPoint defines model for WeightedPoint.
type WeightedPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight float64 `json:"weight"`
}

// ClusterRequest defines model for ClusterRequest.
type ClusterRequest struct {
	Points       []ClusterPoint `json:"points"`
	RadiusMeters float64        `json:"radius_meters"`
}

// Cluster defines model for Cluster.
type Cluster struct {
	CenterIndex int   `json:"center_index"`
	Indices     []int `json:"indices"`
}

// ClusterResponse defines model for ClusterResponse.
type ClusterResponse struct {
	Clusters []Cluster `json:"clusters"`
}

// DistanceRequest defines model for DistanceRequest.
type DistanceRequest struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// DistanceResponse defines model for DistanceResponse.
type DistanceResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	BearingDegrees float64 `json:"bearing_degrees"`
}

// CircleRequest defines model for CircleRequest.
type CircleRequest struct {
	Point        Point   `json:"point"`
	Center       Point   `json:"center"`
	RadiusMeters float64 `json:"radius_meters"`
}

// PolygonRequest defines model for PolygonRequest.
type PolygonRequest struct {
	Point   Point   `json:"point"`
	Polygon []Point `json:"polygon"`
}

// PolygonsRequest defines model for PolygonsRequest.
type PolygonsRequest struct {
	Point    Point     `json:"point"`
	Polygons [][]Point `json:"polygons"`
}

// ContainsResponse defines model for ContainsResponse.
type ContainsResponse struct {
	Inside bool `json:"inside"`
}

// FindPolygonResponse defines model for FindPolygonResponse. Index is -1
// when no polygon contains the point.
type FindPolygonResponse struct {
	Index int `json:"index"`
}

// ShapeRequest defines model for ShapeRequest.
type ShapeRequest struct {
	Points []Point `json:"points"`
}

// RectangleRequest defines model for RectangleRequest.
type RectangleRequest struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// AreaResponse defines model for AreaResponse.
type AreaResponse struct {
	AreaSquareMeters float64 `json:"area_square_meters"`
}

// SimplifyRequest defines model for SimplifyRequest.
type SimplifyRequest struct {
	Points          []Point `json:"points"`
	ToleranceMeters float64 `json:"tolerance_meters"`
}

// PathResponse defines model for PathResponse.
type PathResponse struct {
	Points []Point `json:"points"`
}

// LengthResponse defines model for LengthResponse.
type LengthResponse struct {
	LengthMeters float64 `json:"length_meters"`
}

// PointAtRequest defines model for PointAtRequest.
type PointAtRequest struct {
	Points         []Point `json:"points"`
	DistanceMeters float64 `json:"distance_meters"`
}

// SampleResponse defines model for SampleResponse.
type SampleResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Bearing float64 `json:"bearing"`
}

// NearestRequest defines model for NearestRequest.
type NearestRequest struct {
	Points []Point `json:"points"`
	Target Point   `json:"target"`
}

// NearestResponse defines model for NearestResponse.
type NearestResponse struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	SegmentIndex   int     `json:"segment_index"`
	DistanceMeters float64 `json:"distance_meters"`
}

// BoundsResponse defines model for BoundsResponse.
type BoundsResponse struct {
	North     float64 `json:"north"`
	South     float64 `json:"south"`
	East      float64 `json:"east"`
	West      float64 `json:"west"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Empty     bool    `json:"empty"`
}

// PolylineTextRequest defines model for PolylineTextRequest.
type PolylineTextRequest struct {
	Text string `json:"text"`
}

// EncodedPolyline defines model for EncodedPolyline.
type EncodedPolyline struct {
	Polyline string `json:"polyline"`
}

// HeatmapRequest defines model for HeatmapRequest.
type HeatmapRequest struct {
	Points         []WeightedPoint `json:"points"`
	GridSizeMeters float64         `json:"grid_size_meters"`
}

// HeatmapCell defines model for HeatmapCell.
type HeatmapCell struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Intensity float64 `json:"intensity"`
}

// HeatmapResponse defines model for HeatmapResponse.
type HeatmapResponse struct {
	Cells []HeatmapCell `json:"cells"`
}

// GeoHashResponse defines model for GeoHashResponse.
type GeoHashResponse struct {
	GeoHash string `json:"geohash"`
}

// TileResponse defines model for TileResponse.
type TileResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// PixelResponse defines model for PixelResponse.
type PixelResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status        string            `json:"status"`
	Checks        map[string]string `json:"checks"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Version       string            `json:"version,omitempty"`
}
