package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/geokit/internal/bridge"
	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
	"github.com/kailas-cloud/geokit/internal/logger"
	geojsonenc "github.com/kailas-cloud/geokit/internal/transport/geojson"
	geometryuc "github.com/kailas-cloud/geokit/internal/usecase/geometry"
	healthuc "github.com/kailas-cloud/geokit/internal/usecase/health"
	"github.com/kailas-cloud/geokit/internal/version"
)

// maxBodyBytes caps request bodies; 200k points of JSON fit comfortably.
const maxBodyBytes = 32 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the geometry HTTP API.
type Server struct {
	geometry      *geometryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(geometry *geometryuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		geometry: geometry,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		limitHandler,
		sentinelHandler(domain.ErrLengthMismatch, http.StatusBadRequest, ErrorResponseCodeLengthMismatch),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Use(formatLogField)

		r.Post("/cluster", s.Cluster)
		r.Post("/distance", s.Distance)

		r.Post("/contains/circle", s.ContainsCircle)
		r.Post("/contains/polygon", s.ContainsPolygon)
		r.Post("/contains/polygons", s.ContainsPolygons)

		r.Post("/area/polygon", s.PolygonArea)
		r.Post("/area/rectangle", s.RectangleArea)
		r.Post("/centroid", s.Centroid)

		r.Post("/path/simplify", s.SimplifyPath)
		r.Post("/path/length", s.PathLength)
		r.Post("/path/point-at", s.PointAt)
		r.Post("/path/nearest", s.NearestPoint)
		r.Post("/path/bounds", s.PathBounds)

		r.Post("/polyline/parse", s.ParsePolyline)
		r.Post("/polyline/encode", s.EncodePolyline)
		r.Post("/polyline/decode", s.DecodePolyline)

		r.Post("/heatmap", s.Heatmap)

		r.Get("/geohash", s.GeoHash)
		r.Get("/tiles/{z}/{x}/{y}", s.TileCorner)
		r.Get("/tile", s.Tile)
		r.Get("/pixel", s.Pixel)
		r.Get("/pixel/latlng", s.PixelLatLng)
	})
}

// formatLogField tags the request logger with the requested output format.
func formatLogField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := r.URL.Query().Get("format")
		if f == "" {
			f = string(OutputFormatJSON)
		}
		ctx := logger.WithFields(r.Context(), zap.String("format", f))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Cluster handles POST /v1/cluster.
func (s *Server) Cluster(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req ClusterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	points := clusterPointsFromAPI(req.Points)
	clusters, err := s.geometry.Cluster(r.Context(), points, req.RadiusMeters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	switch format {
	case OutputFormatPacked:
		packed, err := bridge.PackClusters(clusters)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, packed)
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Clusters(points, clusters))
	default:
		resp := ClusterResponse{Clusters: make([]Cluster, len(clusters))}
		for i, c := range clusters {
			resp.Clusters[i] = Cluster{CenterIndex: c.CenterIndex, Indices: c.Indices}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Distance handles POST /v1/distance.
func (s *Server) Distance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req DistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	from, to := pointFromAPI(req.From), pointFromAPI(req.To)
	d, err := s.geometry.Distance(r.Context(), from, to)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	b, err := s.geometry.Bearing(r.Context(), from, to)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DistanceResponse{DistanceMeters: d, BearingDegrees: b})
}

// ContainsCircle handles POST /v1/contains/circle.
func (s *Server) ContainsCircle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req CircleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inside, err := s.geometry.InCircle(r.Context(), pointFromAPI(req.Point), pointFromAPI(req.Center), req.RadiusMeters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContainsResponse{Inside: inside})
}

// ContainsPolygon handles POST /v1/contains/polygon.
func (s *Server) ContainsPolygon(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req PolygonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inside, err := s.geometry.InPolygon(r.Context(), pointFromAPI(req.Point), pointsFromAPI(req.Polygon))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContainsResponse{Inside: inside})
}

// ContainsPolygons handles POST /v1/contains/polygons.
func (s *Server) ContainsPolygons(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req PolygonsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	polygons := make([][]geo.GeoPoint, len(req.Polygons))
	for i, p := range req.Polygons {
		polygons[i] = pointsFromAPI(p)
	}
	idx, err := s.geometry.FindPolygon(r.Context(), pointFromAPI(req.Point), polygons)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FindPolygonResponse{Index: idx})
}

// PolygonArea handles POST /v1/area/polygon.
func (s *Server) PolygonArea(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req ShapeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	area, err := s.geometry.PolygonArea(r.Context(), pointsFromAPI(req.Points))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AreaResponse{AreaSquareMeters: area})
}

// RectangleArea handles POST /v1/area/rectangle.
func (s *Server) RectangleArea(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req RectangleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	area, err := s.geometry.RectangleArea(r.Context(), pointFromAPI(req.SouthWest), pointFromAPI(req.NorthEast))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AreaResponse{AreaSquareMeters: area})
}

// Centroid handles POST /v1/centroid.
func (s *Server) Centroid(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked)
	if !ok {
		return
	}
	var req ShapeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := s.geometry.Centroid(r.Context(), pointsFromAPI(req.Points))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if format == OutputFormatPacked {
		writeJSON(w, http.StatusOK, bridge.PackPoint(c))
		return
	}
	writeJSON(w, http.StatusOK, pointToAPI(c))
}

// SimplifyPath handles POST /v1/path/simplify.
func (s *Server) SimplifyPath(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req SimplifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pts, err := s.geometry.Simplify(r.Context(), pointsFromAPI(req.Points), req.ToleranceMeters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writePath(w, format, pts)
}

// PathLength handles POST /v1/path/length.
func (s *Server) PathLength(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req ShapeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := s.geometry.PathLength(r.Context(), pointsFromAPI(req.Points))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LengthResponse{LengthMeters: l})
}

// PointAt handles POST /v1/path/point-at.
func (s *Server) PointAt(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req PointAtRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sample, err := s.geometry.PointAt(r.Context(), pointsFromAPI(req.Points), req.DistanceMeters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	switch format {
	case OutputFormatPacked:
		writeJSON(w, http.StatusOK, bridge.PackSample(sample, true))
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Sample(sample))
	default:
		writeJSON(w, http.StatusOK, SampleResponse{Lat: sample.Lat, Lon: sample.Lon, Bearing: sample.Bearing})
	}
}

// NearestPoint handles POST /v1/path/nearest.
func (s *Server) NearestPoint(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req NearestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.geometry.NearestPoint(r.Context(), pointsFromAPI(req.Points), pointFromAPI(req.Target))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	switch format {
	case OutputFormatPacked:
		writeJSON(w, http.StatusOK, bridge.PackNearest(res))
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Nearest(res))
	default:
		writeJSON(w, http.StatusOK, NearestResponse{
			Lat:            res.Lat,
			Lon:            res.Lon,
			SegmentIndex:   res.Index,
			DistanceMeters: res.DistanceMeters,
		})
	}
}

// PathBounds handles POST /v1/path/bounds.
func (s *Server) PathBounds(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req ShapeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := s.geometry.PathBounds(r.Context(), pointsFromAPI(req.Points))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	switch format {
	case OutputFormatPacked:
		writeJSON(w, http.StatusOK, bridge.PackBounds(b))
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Bounds(b))
	default:
		writeJSON(w, http.StatusOK, BoundsResponse{
			North:     b.North,
			South:     b.South,
			East:      b.East,
			West:      b.West,
			CenterLat: b.CenterLat,
			CenterLon: b.CenterLon,
			Empty:     b.Empty(),
		})
	}
}

// ParsePolyline handles POST /v1/polyline/parse.
func (s *Server) ParsePolyline(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req PolylineTextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pts, err := s.geometry.ParsePolyline(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writePath(w, format, pts)
}

// EncodePolyline handles POST /v1/polyline/encode.
func (s *Server) EncodePolyline(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.format(w, r); !ok {
		return
	}
	var req ShapeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	enc, err := s.geometry.EncodePolyline(r.Context(), pointsFromAPI(req.Points))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EncodedPolyline{Polyline: enc})
}

// DecodePolyline handles POST /v1/polyline/decode.
func (s *Server) DecodePolyline(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req EncodedPolyline
	if !decodeBody(w, r, &req) {
		return
	}

	pts, err := s.geometry.DecodePolyline(r.Context(), req.Polyline)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writePath(w, format, pts)
}

// Heatmap handles POST /v1/heatmap.
func (s *Server) Heatmap(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, OutputFormatPacked, OutputFormatGeoJSON)
	if !ok {
		return
	}
	var req HeatmapRequest
	if !decodeBody(w, r, &req) {
		return
	}

	points := make([]geo.HeatmapPoint, len(req.Points))
	for i, p := range req.Points {
		points[i] = geo.HeatmapPoint{Lat: p.Lat, Lon: p.Lon, Weight: p.Weight}
	}
	cells, err := s.geometry.Heatmap(r.Context(), points, req.GridSizeMeters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	switch format {
	case OutputFormatPacked:
		writeJSON(w, http.StatusOK, bridge.PackHeatmap(cells))
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Heatmap(cells))
	default:
		resp := HeatmapResponse{Cells: make([]HeatmapCell, len(cells))}
		for i, c := range cells {
			resp.Cells[i] = HeatmapCell{Lat: c.Lat, Lon: c.Lon, Intensity: c.Intensity}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// GeoHash handles GET /v1/geohash.
func (s *Server) GeoHash(w http.ResponseWriter, r *http.Request) {
	p, err := bindGeoHashParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	precision := 0
	if p.Precision != nil {
		precision = *p.Precision
	}
	h, err := s.geometry.GeoHash(r.Context(), geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}, precision)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GeoHashResponse{GeoHash: h})
}

// Tile handles GET /v1/tile.
func (s *Server) Tile(w http.ResponseWriter, r *http.Request) {
	p, err := bindZoomPointParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	format, ok := s.checkFormat(w, p.Format, OutputFormatPacked)
	if !ok {
		return
	}

	t, err := s.geometry.Tile(r.Context(), geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}, p.Zoom)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if format == OutputFormatPacked {
		writeJSON(w, http.StatusOK, bridge.PackTile(t))
		return
	}
	writeJSON(w, http.StatusOK, TileResponse{X: t.X, Y: t.Y, Z: t.Z})
}

// TileCorner handles GET /v1/tiles/{z}/{x}/{y}.
func (s *Server) TileCorner(w http.ResponseWriter, r *http.Request) {
	p, err := bindTilePath(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	format, ok := s.format(w, r, OutputFormatPacked)
	if !ok {
		return
	}

	c, err := s.geometry.TileCorner(r.Context(), p.X, p.Y, p.Z)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if format == OutputFormatPacked {
		writeJSON(w, http.StatusOK, bridge.PackPoint(c))
		return
	}
	writeJSON(w, http.StatusOK, pointToAPI(c))
}

// Pixel handles GET /v1/pixel.
func (s *Server) Pixel(w http.ResponseWriter, r *http.Request) {
	p, err := bindZoomPointParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	format, ok := s.checkFormat(w, p.Format, OutputFormatPacked)
	if !ok {
		return
	}

	px, err := s.geometry.Pixel(r.Context(), geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}, p.Zoom)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if format == OutputFormatPacked {
		writeJSON(w, http.StatusOK, bridge.PackPixel(px))
		return
	}
	writeJSON(w, http.StatusOK, PixelResponse{X: px.X, Y: px.Y})
}

// PixelLatLng handles GET /v1/pixel/latlng.
func (s *Server) PixelLatLng(w http.ResponseWriter, r *http.Request) {
	p, err := bindPixelParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	format, ok := s.checkFormat(w, p.Format, OutputFormatPacked)
	if !ok {
		return
	}

	c, err := s.geometry.PixelToLatLng(r.Context(), geo.PixelResult{X: p.X, Y: p.Y}, p.Zoom)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if format == OutputFormatPacked {
		writeJSON(w, http.StatusOK, bridge.PackPoint(c))
		return
	}
	writeJSON(w, http.StatusOK, pointToAPI(c))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:        string(report.Status),
		Checks:        checks,
		UptimeSeconds: report.Uptime.Seconds(),
		Version:       version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// format binds ?format= and rejects formats the endpoint cannot render.
// JSON is always allowed.
func (s *Server) format(w http.ResponseWriter, r *http.Request, allowed ...OutputFormat) (OutputFormat, bool) {
	f, err := bindFormat(r)
	if err != nil {
		s.writeParamError(w, err)
		return "", false
	}
	return s.checkFormat(w, &f, allowed...)
}

func (s *Server) checkFormat(w http.ResponseWriter, f *OutputFormat, allowed ...OutputFormat) (OutputFormat, bool) {
	format, err := resolveFormat(f)
	if err != nil {
		s.writeParamError(w, err)
		return "", false
	}
	if format == OutputFormatJSON {
		return format, true
	}
	for _, a := range allowed {
		if a == format {
			return format, true
		}
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeFormatUnsupported,
		fmt.Sprintf("format %q is not available for this endpoint", format))
	return "", false
}

func (s *Server) writePath(w http.ResponseWriter, format OutputFormat, pts []geo.GeoPoint) {
	switch format {
	case OutputFormatPacked:
		writeJSON(w, http.StatusOK, bridge.PackPoints(pts))
	case OutputFormatGeoJSON:
		writeGeoJSON(w, geojsonenc.Path(pts))
	default:
		writeJSON(w, http.StatusOK, PathResponse{Points: pointsToAPI(pts)})
	}
}

func (s *Server) writeParamError(w http.ResponseWriter, err error) {
	s.logger.Debug("invalid parameter", zap.Error(err))
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeGeoJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTooManyPoints,
		domain.ErrLengthMismatch,
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			// Validation messages carry the offending value and are safe to echo.
			if s == domain.ErrInvalidArgument || s == domain.ErrLengthMismatch {
				return err.Error()
			}
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// limitHandler handles ErrTooManyPoints and reports the configured limit.
func limitHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrTooManyPoints) {
		return false
	}
	resp := ErrorResponse{Code: ErrorResponseCodeTooManyPoints, Message: msg}
	var le *domain.LimitError
	if errors.As(err, &le) {
		resp.Message = le.Error()
		limit := le.Limit
		resp.Limit = &limit
	}
	writeJSON(w, http.StatusRequestEntityTooLarge, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func pointFromAPI(p Point) geo.GeoPoint {
	return geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

func pointToAPI(p geo.GeoPoint) Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}

func pointsFromAPI(pts []Point) []geo.GeoPoint {
	out := make([]geo.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = pointFromAPI(p)
	}
	return out
}

func pointsToAPI(pts []geo.GeoPoint) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = pointToAPI(p)
	}
	return out
}

func clusterPointsFromAPI(pts []ClusterPoint) []geo.ClusterPoint {
	out := make([]geo.ClusterPoint, len(pts))
	for i, p := range pts {
		idx := i
		if p.Index != nil {
			idx = *p.Index
		}
		out[i] = geo.ClusterPoint{Lat: p.Lat, Lon: p.Lon, Index: idx}
	}
	return out
}
