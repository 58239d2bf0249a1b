package stage

const correctionPrompt = `Correct the grammar and spelling of the numbered interview lines below while preserving their meaning, order, and structure. Do not merge, split, reorder, or drop lines.

Return exactly %d lines, one corrected line per input line, keeping the "N. " numbering. Return nothing else.

Lines:
%s`

const correctionRetryPrompt = `Your previous reply did not contain one output line per input line. This is required.

Correct the grammar and spelling of the numbered interview lines below. Return EXACTLY %d numbered lines — the same count as the input, one corrected line per input line, in the same order, keeping the "N. " numbering. Return nothing else.

Lines:
%s`

const extractionPrompt = `Below are numbered statements made by an interviewee. Extract every standalone, quotable statement and discard filler, small talk, and incomplete fragments. A single numbered statement may yield zero, one, or several quotes.

Output one quote per line in the form:
N|quote text

where N is the number of the statement the quote was drawn from. Output nothing else. If nothing is quotable, return an empty response.

Statements:
%s`

const categorizePrompt = `Classify the interview quote below into exactly one of these topics:
%s

Reply with only the topic name, nothing else. If no topic fits, reply Uncategorized.

Quote:
%s`
