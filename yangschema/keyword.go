// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema

// Keyword enumerates the YANG statements this package's schema tree
// understands. Argument, children and flags are interpreted per RFC 7950;
// this core only needs enough of the grammar to validate and route RPCs,
// not a general-purpose YANG compiler.
type Keyword string

const (
	KeywordSpec         Keyword = "spec" // pseudo-root; children are modules
	KeywordModule       Keyword = "module"
	KeywordSubmodule    Keyword = "submodule"
	KeywordContainer    Keyword = "container"
	KeywordLeaf         Keyword = "leaf"
	KeywordLeafList     Keyword = "leaf-list"
	KeywordList         Keyword = "list"
	KeywordChoice       Keyword = "choice"
	KeywordCase         Keyword = "case"
	KeywordRPC          Keyword = "rpc"
	KeywordInput        Keyword = "input"
	KeywordOutput       Keyword = "output"
	KeywordNotification Keyword = "notification"
	KeywordType          Keyword = "type"
	KeywordKey           Keyword = "key"
	KeywordUses          Keyword = "uses"
	KeywordAugment       Keyword = "augment"
	KeywordAnyxml        Keyword = "anyxml"
	KeywordAnydata       Keyword = "anydata"
)

// dataNodeKeywords classify per RFC 7950 §3: "data nodes" are nodes in a
// datastore, i.e. container, leaf, leaf-list, list, anydata, anyxml.
var dataNodeKeywords = map[Keyword]bool{
	KeywordContainer: true,
	KeywordLeaf:      true,
	KeywordLeafList:  true,
	KeywordList:      true,
	KeywordAnydata:   true,
	KeywordAnyxml:    true,
}

// dataDefinitionKeywords per RFC 7950 §3: data nodes, plus the
// choice/case/uses/augment statements that define or structure them
// without being data nodes themselves.
var dataDefinitionKeywords = map[Keyword]bool{
	KeywordContainer: true,
	KeywordLeaf:      true,
	KeywordLeafList:  true,
	KeywordList:      true,
	KeywordAnydata:   true,
	KeywordAnyxml:    true,
	KeywordChoice:    true,
	KeywordCase:      true,
	KeywordUses:      true,
	KeywordAugment:   true,
}

// schemaNodeKeywords per RFC 7950 §3: every node that appears in the schema
// tree and carries a position in the namespace, i.e. data nodes and
// choice/case plus rpc/notification (uses/augment are not schema nodes).
var schemaNodeKeywords = map[Keyword]bool{
	KeywordContainer:    true,
	KeywordLeaf:         true,
	KeywordLeafList:     true,
	KeywordList:         true,
	KeywordAnydata:      true,
	KeywordAnyxml:       true,
	KeywordChoice:       true,
	KeywordCase:         true,
	KeywordRPC:          true,
	KeywordNotification: true,
}
