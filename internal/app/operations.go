package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/guardctl/pkg/control"
)

// ArgKind tells what, if anything, an operation takes from the caller.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgURL
	ArgRules
)

// QueryLogDownload addresses the download variant of the query log endpoint.
const QueryLogDownload control.OperationID = "global_query_log_download"

// Operation binds a dispatcher method to a name the CLI and journal can use.
type Operation struct {
	ID         control.OperationID
	Category   string
	Action     string
	Summary    string
	Arg        ArgKind
	Descriptor control.EndpointDescriptor
	run        func(ctx context.Context, d *control.Dispatcher, arg string) (*control.Response, error)
}

type noArgFn func(*control.Dispatcher, context.Context) (*control.Response, error)
type argFn func(*control.Dispatcher, context.Context, string) (*control.Response, error)

func op(id control.OperationID, category, action, summary string, fn noArgFn) Operation {
	return Operation{
		ID:         id,
		Category:   category,
		Action:     action,
		Summary:    summary,
		Arg:        ArgNone,
		Descriptor: descriptorFor(id),
		run: func(ctx context.Context, d *control.Dispatcher, _ string) (*control.Response, error) {
			return fn(d, ctx)
		},
	}
}

func opWithArg(id control.OperationID, category, action, summary string, kind ArgKind, fn argFn) Operation {
	return Operation{
		ID:         id,
		Category:   category,
		Action:     action,
		Summary:    summary,
		Arg:        kind,
		Descriptor: descriptorFor(id),
		run: func(ctx context.Context, d *control.Dispatcher, arg string) (*control.Response, error) {
			return fn(d, ctx, arg)
		},
	}
}

func descriptorFor(id control.OperationID) control.EndpointDescriptor {
	if id == QueryLogDownload {
		d, _ := control.Lookup(control.GlobalQueryLog)
		d.Path += "?download=1"
		return d
	}
	d, ok := control.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("app: operation %q missing from control catalog", id))
	}
	return d
}

var operations = []Operation{
	op(control.GlobalRestart, "global", "restart", "Restart DNS filtering", (*control.Dispatcher).RestartGlobalFiltering),
	op(control.GlobalStart, "global", "start", "Start DNS filtering", (*control.Dispatcher).StartGlobalFiltering),
	op(control.GlobalStop, "global", "stop", "Stop DNS filtering", (*control.Dispatcher).StopGlobalFiltering),
	op(control.GlobalStatus, "global", "status", "Show service status", (*control.Dispatcher).GlobalStatus),
	op(control.GlobalStats, "global", "stats", "Show aggregate statistics", (*control.Dispatcher).GlobalStats),
	op(control.GlobalStatsHistory, "global", "stats-history", "Show hourly statistics for today", (*control.Dispatcher).GlobalStatsHistory),
	op(control.GlobalStatsTop, "global", "stats-top", "Show top clients and domains", (*control.Dispatcher).GlobalStatsTop),

	op(control.GlobalQueryLog, "querylog", "get", "Show the query log", (*control.Dispatcher).QueryLog),
	op(QueryLogDownload, "querylog", "download", "Download the query log", (*control.Dispatcher).DownloadQueryLog),
	op(control.GlobalQueryLogEnable, "querylog", "enable", "Enable the query log", (*control.Dispatcher).EnableQueryLog),
	op(control.GlobalQueryLogDisable, "querylog", "disable", "Disable the query log", (*control.Dispatcher).DisableQueryLog),

	opWithArg(control.GlobalSetUpstreamDNS, "upstream", "set", "Set upstream DNS servers", ArgURL, (*control.Dispatcher).SetUpstream),

	op(control.FilteringStatus, "filtering", "status", "Show filtering status", (*control.Dispatcher).FilteringStatus),
	op(control.FilteringEnable, "filtering", "enable", "Enable filtering", (*control.Dispatcher).EnableFiltering),
	op(control.FilteringDisable, "filtering", "disable", "Disable filtering", (*control.Dispatcher).DisableFiltering),
	op(control.FilteringRefresh, "filtering", "refresh", "Refresh filter lists", (*control.Dispatcher).RefreshFilters),
	opWithArg(control.FilteringAddFilter, "filtering", "add-filter", "Add a filter list by URL", ArgURL, (*control.Dispatcher).AddFilter),
	opWithArg(control.FilteringRemoveFilter, "filtering", "remove-filter", "Remove a filter list by URL", ArgURL, (*control.Dispatcher).RemoveFilter),
	opWithArg(control.FilteringEnableFilter, "filtering", "enable-filter", "Enable a filter list by URL", ArgURL, (*control.Dispatcher).EnableFilter),
	opWithArg(control.FilteringDisableFilter, "filtering", "disable-filter", "Disable a filter list by URL", ArgURL, (*control.Dispatcher).DisableFilter),
	opWithArg(control.FilteringSetRules, "filtering", "set-rules", "Replace the custom filtering rules", ArgRules, (*control.Dispatcher).SetRules),

	op(control.ParentalStatus, "parental", "status", "Show parental control status", (*control.Dispatcher).ParentalStatus),
	op(control.ParentalEnable, "parental", "enable", "Enable parental control", (*control.Dispatcher).EnableParentalControl),
	op(control.ParentalDisable, "parental", "disable", "Disable parental control", (*control.Dispatcher).DisableParentalControl),

	op(control.SafebrowsingStatus, "safebrowsing", "status", "Show safe browsing status", (*control.Dispatcher).SafebrowsingStatus),
	op(control.SafebrowsingEnable, "safebrowsing", "enable", "Enable safe browsing", (*control.Dispatcher).EnableSafebrowsing),
	op(control.SafebrowsingDisable, "safebrowsing", "disable", "Disable safe browsing", (*control.Dispatcher).DisableSafebrowsing),

	op(control.SafesearchStatus, "safesearch", "status", "Show safe search status", (*control.Dispatcher).SafesearchStatus),
	op(control.SafesearchEnable, "safesearch", "enable", "Enable safe search", (*control.Dispatcher).EnableSafesearch),
	op(control.SafesearchDisable, "safesearch", "disable", "Disable safe search", (*control.Dispatcher).DisableSafesearch),
}

// Operations returns every operation in listing order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Categories returns the operation categories in listing order.
func Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, o := range operations {
		if !seen[o.Category] {
			seen[o.Category] = true
			out = append(out, o.Category)
		}
	}
	return out
}

// OperationByID resolves an operation by its identifier.
func OperationByID(id string) (Operation, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, o := range operations {
		if string(o.ID) == id {
			return o, true
		}
	}
	return Operation{}, false
}
