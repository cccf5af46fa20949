/*
Package status writes output files and reports batch progress.

	            +-------------+
	            |   Status    |
	            |  (Outputs)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|FileWriter |           |Reporter |
	| (atomic)  |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Writes outputs atomically (temp file in the target dir, then rename)
- Creates the output directory
- Tracks the outcome of every processed file
- Reports progress through zerolog or a pterm progress bar

⚡ Key Responsibilities:
- FileWriter: WriteFileAtomic, CreateDir
- Reporter: StartOperation, UpdateProgress, FinishOperation
- FileFormatter: one line per outcome, progress percentage

A Reporter is only ever called from one goroutine at a time, so
implementations need no locking of their own. Manager locks anyway because
its getters may be read from elsewhere.

🔍 Example:

	mgr := status.New(zerolog.Ctx(ctx))
	reporter := status.Tee(mgr, status.NewBarReporter(os.Stderr, "replacing"))

	if err := mgr.CreateDir(ctx, "out"); err != nil {
		return err
	}
	err := mgr.WriteFileAtomic(ctx, "out/Imp_a.txt", content)
*/
package status
