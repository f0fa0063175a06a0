package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/runtime"
	"github.com/manav03panchal/chronos/internal/validate"
)

// completionContext opens the stores for dynamic completions, which run
// without the root pre-run hook.
func completionContext() *runtime.Context {
	if ctx != nil {
		return ctx
	}
	c, err := runtime.New(runtime.DefaultOptions())
	if err != nil {
		return nil
	}
	ctx = c
	return ctx
}

// filterIDs returns "id<TAB>title" pairs whose id starts with prefix.
func filterIDs(prefix string, ids, titles []string) []string {
	var completions []string
	for i, id := range ids {
		if strings.HasPrefix(id, prefix) {
			completions = append(completions, id+"\t"+titles[i])
		}
	}
	return completions
}

// completeDailyTasks completes the IDs of today's daily tasks.
func completeDailyTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := completionContext()
	if c == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tasks, err := c.Daily.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, len(tasks))
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i], titles[i] = t.ID, t.Title
	}
	return filterIDs(toComplete, ids, titles), cobra.ShellCompDirectiveNoFileComp
}

// completeHistory completes the IDs of archived daily tasks.
func completeHistory(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := completionContext()
	if c == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	entries, err := c.Daily.History(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, len(entries))
	titles := make([]string, len(entries))
	for i, e := range entries {
		ids[i], titles[i] = e.ID, e.Title
	}
	return filterIDs(toComplete, ids, titles), cobra.ShellCompDirectiveNoFileComp
}

// completeLogs completes journal entry IDs.
func completeLogs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := completionContext()
	if c == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	entries, err := c.Journal.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, len(entries))
	titles := make([]string, len(entries))
	for i, e := range entries {
		ids[i], titles[i] = e.ID, validate.TruncateString(e.Content, 40)
	}
	return filterIDs(toComplete, ids, titles), cobra.ShellCompDirectiveNoFileComp
}

// completeMilestones completes milestone IDs.
func completeMilestones(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := completionContext()
	if c == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ms, err := c.Planner.Milestones(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, len(ms))
	titles := make([]string, len(ms))
	for i, m := range ms {
		ids[i], titles[i] = m.ID, m.Title
	}
	return filterIDs(toComplete, ids, titles), cobra.ShellCompDirectiveNoFileComp
}

// completeMilestoneStatus completes the second argument of milestone status.
func completeMilestoneStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeMilestones(cmd, args, toComplete)
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range []string{"completed", "pending", "long-term", "missed"} {
		if strings.HasPrefix(s, toComplete) {
			out = append(out, s)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
