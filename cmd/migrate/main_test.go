package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- header
CREATE TABLE a (
  id STRING(36) NOT NULL,
) PRIMARY KEY (id);

-- index
CREATE INDEX idx_a ON a(id);
`
	stmts := splitDDLStatements(content)
	assert.Equal(t, []string{
		"CREATE TABLE a (\nid STRING(36) NOT NULL,\n) PRIMARY KEY (id)",
		"CREATE INDEX idx_a ON a(id)",
	}, stmts)
}

func TestOptions_Paths(t *testing.T) {
	o := options{projectID: "p", instanceID: "i", databaseID: "d"}
	assert.Equal(t, "projects/p/instances/i", o.instancePath())
	assert.Equal(t, "projects/p/instances/i/databases/d", o.databasePath())
}
