package modrinth

import "slices"

// maturityRank orders release channels from experimental to stable. Unknown
// channels rank below everything the API documents.
func maturityRank(versionType string) int {
	switch versionType {
	case "release":
		return 2
	case "beta":
		return 1
	case "alpha":
		return 0
	default:
		return -1
	}
}

// BestRelease picks the most mature release compatible with the wanted game
// version and loader. An empty want matches every release. Among releases
// of equal maturity the first one wins, and the API lists newest first, so
// ties resolve to the most recent release. Returns nil when nothing is
// compatible.
func BestRelease(versions []Version, gameVersion, loader string) *Version {
	var best *Version
	for i := range versions {
		v := &versions[i]
		if gameVersion != "" && !slices.Contains(v.GameVersions, gameVersion) {
			continue
		}
		if loader != "" && !slices.Contains(v.Loaders, loader) {
			continue
		}
		if best == nil || maturityRank(v.VersionType) > maturityRank(best.VersionType) {
			best = v
		}
	}
	return best
}
