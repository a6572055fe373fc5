// Package ruleset loads stored formulas from YAML rule sets.
//
// A rule set looks like
//
//	rules:
//	  - name: oversold
//	    expr: RSI(14) < 30
//	    description: momentum entry
//
// Every rule becomes a virtual source file named "<set>#<rule>" so that the
// parser's diagnostics point at the rule that produced them.
package ruleset
