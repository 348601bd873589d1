package help

const ColdstartYAML = `# wordcount-bench Quick Start

strategies:
  block: "Contiguous chunks, the first L%W chunks get one extra file (default)"
  round-robin: "File i goes to worker i%W"

output_formats:
  text: "Execution time and total words per mode (default)"
  json: "Full report with per-file counts"
  yaml: "Same as json, in YAML"

commands:
  compare: |
    wcb --folder texts

  compare_fixed_workers: |
    wcb compare --folder texts --workers 4 --strategy round-robin

  sequential_only: |
    wcb sequential --folder texts

  parallel_only: |
    wcb parallel --folder texts --workers 8 --format json

  record_run: |
    wcb compare --folder texts --record

  write_manifest: |
    wcb compare --folder texts --manifest-dir reports

  list_runs: |
    wcb history runs --limit 10

  show_run: |
    wcb history show 3 --format yaml

  delete_run: |
    wcb history delete 3

exit_codes:
  0: "Counts agree between sequential and parallel"
  1: "Sequential and parallel results differ"
  2: "Invalid configuration or the folder could not be listed"

notes:
  - "Only files directly inside --folder are counted, subfolders are skipped"
  - "Unreadable or non-UTF-8 files are reported as errors and excluded from totals"
  - "--workers defaults to the number of logical CPUs"
  - "Speedup prints n/a when the parallel time rounds to zero"
`
