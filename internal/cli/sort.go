package cli

import (
	"fmt"
	"strings"

	"github.com/mmed-hajnasr/do-me/internal/model"
)

func parseWorkspaceSort(key string, desc bool) (model.WorkspaceSorter, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	var names []string
	for _, k := range model.WorkspaceSortKeys {
		if string(k) == key {
			return model.WorkspaceSorter{Key: k, Desc: desc}, nil
		}
		names = append(names, string(k))
	}
	return model.WorkspaceSorter{}, fmt.Errorf("unknown sort key %q (want %s)", key, strings.Join(names, "|"))
}

func parseTaskSort(key string, desc bool) (model.TaskSorter, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	var names []string
	for _, k := range model.TaskSortKeys {
		if string(k) == key {
			return model.TaskSorter{Key: k, Desc: desc}, nil
		}
		names = append(names, string(k))
	}
	return model.TaskSorter{}, fmt.Errorf("unknown sort key %q (want %s)", key, strings.Join(names, "|"))
}
