package control

import "net/http"

// Method is an HTTP verb accepted by the control API.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// EndpointDescriptor is the fixed path/method pair carrying one operation.
type EndpointDescriptor struct {
	Path   string `json:"path" yaml:"path"`
	Method Method `json:"method" yaml:"method"`
}

// OperationID names one logical operation of the control API.
type OperationID string

const (
	GlobalRestart         OperationID = "global_restart"
	GlobalStart           OperationID = "global_start"
	GlobalStats           OperationID = "global_stats"
	GlobalStatsHistory    OperationID = "global_stats_history"
	GlobalStatus          OperationID = "global_status"
	GlobalStop            OperationID = "global_stop"
	GlobalStatsTop        OperationID = "global_stats_top"
	GlobalQueryLog        OperationID = "global_query_log"
	GlobalQueryLogEnable  OperationID = "global_query_log_enable"
	GlobalQueryLogDisable OperationID = "global_query_log_disable"
	GlobalSetUpstreamDNS  OperationID = "global_set_upstream_dns"

	FilteringStatus        OperationID = "filtering_status"
	FilteringEnable        OperationID = "filtering_enable"
	FilteringDisable       OperationID = "filtering_disable"
	FilteringAddFilter     OperationID = "filtering_add_filter"
	FilteringRemoveFilter  OperationID = "filtering_remove_filter"
	FilteringSetRules      OperationID = "filtering_set_rules"
	FilteringEnableFilter  OperationID = "filtering_enable_filter"
	FilteringDisableFilter OperationID = "filtering_disable_filter"
	FilteringRefresh       OperationID = "filtering_refresh"

	ParentalStatus  OperationID = "parental_status"
	ParentalEnable  OperationID = "parental_enable"
	ParentalDisable OperationID = "parental_disable"

	SafebrowsingStatus  OperationID = "safebrowsing_status"
	SafebrowsingEnable  OperationID = "safebrowsing_enable"
	SafebrowsingDisable OperationID = "safebrowsing_disable"

	SafesearchStatus  OperationID = "safesearch_status"
	SafesearchEnable  OperationID = "safesearch_enable"
	SafesearchDisable OperationID = "safesearch_disable"
)

// CatalogEntry pairs an operation with its descriptor.
type CatalogEntry struct {
	ID         OperationID        `json:"id" yaml:"id"`
	Descriptor EndpointDescriptor `json:"descriptor" yaml:"descriptor"`
}

// catalog is the complete operation set. Order is the listing order.
var catalog = [...]CatalogEntry{
	{GlobalRestart, EndpointDescriptor{"restart", MethodPost}},
	{GlobalStart, EndpointDescriptor{"start", MethodPost}},
	{GlobalStats, EndpointDescriptor{"stats", MethodGet}},
	{GlobalStatsHistory, EndpointDescriptor{"stats_history", MethodGet}},
	{GlobalStatus, EndpointDescriptor{"status", MethodGet}},
	{GlobalStop, EndpointDescriptor{"stop", MethodPost}},
	{GlobalStatsTop, EndpointDescriptor{"stats_top", MethodGet}},
	{GlobalQueryLog, EndpointDescriptor{"querylog", MethodGet}},
	{GlobalQueryLogEnable, EndpointDescriptor{"querylog_enable", MethodPost}},
	{GlobalQueryLogDisable, EndpointDescriptor{"querylog_disable", MethodPost}},
	{GlobalSetUpstreamDNS, EndpointDescriptor{"set_upstream_dns", MethodPost}},

	{FilteringStatus, EndpointDescriptor{"filtering/status", MethodGet}},
	{FilteringEnable, EndpointDescriptor{"filtering/enable", MethodPost}},
	{FilteringDisable, EndpointDescriptor{"filtering/disable", MethodPost}},
	{FilteringAddFilter, EndpointDescriptor{"filtering/add_url", MethodPut}},
	{FilteringRemoveFilter, EndpointDescriptor{"filtering/remove_url", MethodDelete}},
	{FilteringSetRules, EndpointDescriptor{"filtering/set_rules", MethodPut}},
	{FilteringEnableFilter, EndpointDescriptor{"filtering/enable_url", MethodPost}},
	{FilteringDisableFilter, EndpointDescriptor{"filtering/disable_url", MethodPost}},
	{FilteringRefresh, EndpointDescriptor{"filtering/refresh", MethodPost}},

	{ParentalStatus, EndpointDescriptor{"parental/status", MethodGet}},
	{ParentalEnable, EndpointDescriptor{"parental/enable", MethodPost}},
	{ParentalDisable, EndpointDescriptor{"parental/disable", MethodPost}},

	{SafebrowsingStatus, EndpointDescriptor{"safebrowsing/status", MethodGet}},
	{SafebrowsingEnable, EndpointDescriptor{"safebrowsing/enable", MethodPost}},
	{SafebrowsingDisable, EndpointDescriptor{"safebrowsing/disable", MethodPost}},

	{SafesearchStatus, EndpointDescriptor{"safesearch/status", MethodGet}},
	{SafesearchEnable, EndpointDescriptor{"safesearch/enable", MethodPost}},
	{SafesearchDisable, EndpointDescriptor{"safesearch/disable", MethodPost}},
}

var catalogIdx = func() map[OperationID]EndpointDescriptor {
	idx := make(map[OperationID]EndpointDescriptor, len(catalog))
	for _, e := range catalog {
		idx[e.ID] = e.Descriptor
	}
	return idx
}()

// Catalog returns a copy of every known operation in listing order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id OperationID) (EndpointDescriptor, bool) {
	d, ok := catalogIdx[id]
	return d, ok
}

// mustLookup is used by the named operations, whose identifiers are all in the catalog.
func mustLookup(id OperationID) EndpointDescriptor {
	d, ok := catalogIdx[id]
	if !ok {
		panic("control: operation missing from catalog: " + string(id))
	}
	return d
}
