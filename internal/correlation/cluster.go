package correlation

import (
	"fmt"
	"sort"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// buildClusters groups geolocated events by greedy single-pass assignment.
// Each unused event with coordinates seeds a cluster centered on its own
// position; other events within the join radius are absorbed and marked
// used. Seeds themselves are never marked used, so a later seed may
// re-absorb an already-clustered event and clusters may overlap. The result
// is order-dependent on snapshot iteration order.
func (e *Engine) buildClusters(events []models.Event) []models.GeographicCluster {
	used := make([]bool, len(events))
	var clusters []models.GeographicCluster

	for i := range events {
		seed := events[i]
		if used[i] || !seed.HasCoordinates() {
			continue
		}

		cluster := models.GeographicCluster{
			ID:         fmt.Sprintf("cluster_%s", seed.ID),
			CenterLat:  *seed.Latitude,
			CenterLon:  *seed.Longitude,
			EventCount: 1,
			StartTime:  seed.Timestamp,
			EndTime:    seed.Timestamp,
		}
		categories := map[string]bool{seed.Category: true}

		for j := range events {
			if j == i || used[j] || !events[j].HasCoordinates() {
				continue
			}
			member := events[j]

			dist := haversineKm(*seed.Latitude, *seed.Longitude, *member.Latitude, *member.Longitude)
			if dist > e.cfg.ClusterRadiusKm {
				continue
			}

			cluster.EventCount++
			if dist > cluster.RadiusKm {
				cluster.RadiusKm = dist
			}
			categories[member.Category] = true
			if member.Timestamp.Before(cluster.StartTime) {
				cluster.StartTime = member.Timestamp
			}
			if member.Timestamp.After(cluster.EndTime) {
				cluster.EndTime = member.Timestamp
			}
			used[j] = true
		}

		if cluster.EventCount < e.cfg.ClusterMinSize {
			continue
		}

		for cat := range categories {
			if cat != "" {
				cluster.Categories = append(cluster.Categories, cat)
			}
		}
		sort.Strings(cluster.Categories)
		clusters = append(clusters, cluster)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].EventCount > clusters[j].EventCount
	})
	return clusters
}
