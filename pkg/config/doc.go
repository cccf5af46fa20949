/*
Package config loads and saves pctreplace rule sets.

	            +-------------+
	            |   RuleSet   |
	            | (validated) |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	| JSON/JSONC| |  YAML   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads rule files in any registered format
- Applies the defaults a missing field implies
- Builds validated text.Rule values in file order
- Writes a rule set back so that loading it again is lossless

🔄 Flow:
1. GetParser picks a format from the file extension
2. Parser.Parse decodes into File
3. FromFile fills defaults and validates each task
4. Save runs the same path in reverse through Parser.Encode

📝 Defaults:
- output_prefix: "Imp_"
- case_sensitive: true
- use_regex: false
- percentage: 100

🔍 Example:

	rs, err := config.Load(ctx, "rules.yaml")
	if err != nil {
		var verr *text.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("rule error: %s %s\n", verr.Field, verr.Reason)
		}
		return err
	}
*/
package config
