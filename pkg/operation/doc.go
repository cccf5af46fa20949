/*
Package operation applies rule lists to files.

	+-------------+
	|  RunBatch   |
	| (Pool/Agg.) |
	+------+------+
	       |
	+------+------+
	| ProcessFile |
	|  (Worker)   |
	+------+------+

🎯 Purpose:
- Reads each input as UTF-8, applies the rules in order, writes the output
- Runs files on a bounded pool of workers
- Collects per file outcomes and the before/after totals

🔄 Flow:
1. ExpandInputs turns arguments and globs into input paths
2. RunBatch creates the output directory once
3. Workers run ProcessFile; one aggregator goroutine collects results
4. The Reporter sees every result from that aggregator only
5. BatchResult lists outputs and errors in input order

⚡ Failure handling:
- An uncreatable output directory aborts the batch before any read
- A file that cannot be read, decoded, or written becomes an IOError in its
  result; the rest of the batch continues
- Cancelling the context stops dispatch; files not started are recorded as
  failed and RunBatch returns the partial result with the context error

🔍 Example:

	runner := operation.NewRunner(operation.Options{Writer: status.New(zerolog.Ctx(ctx))})
	batch, err := runner.RunBatch(ctx, paths, rs.Rules, operation.NamingFromRuleSet(rs), 0)
	if err != nil {
		return err
	}
	for _, fe := range batch.Errors {
		fmt.Printf("%s: %s\n", fe.Path, fe.Message)
	}
*/
package operation
