// Package geokit provides an in-process Go client for the geokit geometry
// core: greedy marker clustering, containment and area tests, trajectory
// simplification, path sampling, geohash encoding and map-tile projection.
//
// The client keeps no state between calls and is safe for concurrent use.
//
//	client, _ := geokit.New(geokit.WithMaxPoints(100_000))
//	clusters, _ := client.Cluster(ctx, points, 50)
//	for _, c := range clusters {
//	    fmt.Println(points[c.CenterIndex], len(c.Indices))
//	}
//
// Every call can be observed through slog and Prometheus:
//
//	client, _ := geokit.New(
//	    geokit.WithLogger(slog.Default()),
//	    geokit.WithPrometheus(prometheus.DefaultRegisterer),
//	)
package geokit
