package foldd

import "time"

// aLongTimeAgo is a non-zero time in the past, used to fail pending reads
// immediately.
var aLongTimeAgo = time.Unix(1, 0)
