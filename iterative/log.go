// SPDX-License-Identifier: MIT

package iterative

import logging "github.com/ipfs/go-log/v2"

var log = logging.Logger("iterative")
