// Package swipe holds the pure discovery policy: age cohorts, great-circle
// distance, discovery preferences and the per-candidate filter and ranking
// used by the matching engine. Nothing here touches storage or the clock;
// callers pass "now" in.
package swipe
